package entity

import "strings"

type LeadStage string

const (
	StageProspect    LeadStage = "prospect"
	StageQualified   LeadStage = "qualified"
	StageProposal    LeadStage = "proposal"
	StageNegotiation LeadStage = "negotiation"
	StageClosedWon   LeadStage = "closed-won"
	StageClosedLost  LeadStage = "closed-lost"
)

// Stages lists the pipeline in order.
var Stages = []LeadStage{
	StageProspect,
	StageQualified,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

func (s LeadStage) Valid() bool {
	for _, st := range Stages {
		if s == st {
			return true
		}
	}
	return false
}

// Open reports whether the opportunity is still in play.
func (s LeadStage) Open() bool {
	return s != StageClosedWon && s != StageClosedLost
}

type Lead struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Company       string    `json:"company"`
	Value         float64   `json:"value"`
	Probability   int       `json:"probability"` // 0-100
	Stage         LeadStage `json:"stage"`
	AssignedTo    string    `json:"assigned_to"`
	CreatedAt     string    `json:"created_at"`
	ExpectedClose string    `json:"expected_close"`
	AIScore       int       `json:"ai_score"` // 0-100
	Notes         []string  `json:"notes"`
}

// LeadInput excludes ID, CreatedAt and AIScore; the store assigns them.
type LeadInput struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Company       string    `json:"company"`
	Value         float64   `json:"value"`
	Probability   int       `json:"probability"`
	Stage         LeadStage `json:"stage"`
	AssignedTo    string    `json:"assigned_to"`
	ExpectedClose string    `json:"expected_close"`
	Notes         []string  `json:"notes"`
}

// LeadPatch is a partial update. CreatedAt and AIScore are patchable even
// though creation treats them as fixed; see DESIGN.md.
type LeadPatch struct {
	Name          *string    `json:"name,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Company       *string    `json:"company,omitempty"`
	Value         *float64   `json:"value,omitempty"`
	Probability   *int       `json:"probability,omitempty"`
	Stage         *LeadStage `json:"stage,omitempty"`
	AssignedTo    *string    `json:"assigned_to,omitempty"`
	CreatedAt     *string    `json:"created_at,omitempty"`
	ExpectedClose *string    `json:"expected_close,omitempty"`
	AIScore       *int       `json:"ai_score,omitempty"`
	Notes         *[]string  `json:"notes,omitempty"`
}

func NewLead(id, createdAt string, aiScore int, in LeadInput) Lead {
	return Lead{
		ID:            id,
		Name:          in.Name,
		Email:         in.Email,
		Company:       in.Company,
		Value:         in.Value,
		Probability:   in.Probability,
		Stage:         in.Stage,
		AssignedTo:    in.AssignedTo,
		CreatedAt:     createdAt,
		ExpectedClose: in.ExpectedClose,
		AIScore:       aiScore,
		Notes:         cloneStrings(in.Notes),
	}
}

func (l *Lead) Apply(p LeadPatch) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Email != nil {
		l.Email = *p.Email
	}
	if p.Company != nil {
		l.Company = *p.Company
	}
	if p.Value != nil {
		l.Value = *p.Value
	}
	if p.Probability != nil {
		l.Probability = *p.Probability
	}
	if p.Stage != nil {
		l.Stage = *p.Stage
	}
	if p.AssignedTo != nil {
		l.AssignedTo = *p.AssignedTo
	}
	if p.CreatedAt != nil {
		l.CreatedAt = *p.CreatedAt
	}
	if p.ExpectedClose != nil {
		l.ExpectedClose = *p.ExpectedClose
	}
	if p.AIScore != nil {
		l.AIScore = *p.AIScore
	}
	if p.Notes != nil {
		l.Notes = cloneStrings(*p.Notes)
	}
}

func (l Lead) Clone() Lead {
	l.Notes = cloneStrings(l.Notes)
	return l
}

// MatchesContact is the only link between leads and contacts: same email
// (case-insensitive) or same company name. There is no foreign key.
func (l Lead) MatchesContact(c Contact) bool {
	if l.Email != "" && strings.EqualFold(l.Email, c.Email) {
		return true
	}
	return l.Company != "" && l.Company == c.Company
}

// WeightedValue is the deal value scaled by its win probability.
func (l Lead) WeightedValue() float64 {
	return l.Value * float64(l.Probability) / 100
}
