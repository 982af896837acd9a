package crm

import (
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// ContactFilter narrows Contacts. Zero fields match everything.
type ContactFilter struct {
	Status entity.ContactStatus
	Tag    string
	Search string // name, email or company, case-insensitive
}

func (f ContactFilter) match(c entity.Contact) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Tag != "" && !c.HasTag(f.Tag) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.Company), q)
	}
	return true
}

type LeadFilter struct {
	Stage      entity.LeadStage
	AssignedTo string
}

func (f LeadFilter) match(l entity.Lead) bool {
	if f.Stage != "" && l.Stage != f.Stage {
		return false
	}
	if f.AssignedTo != "" && !strings.EqualFold(l.AssignedTo, f.AssignedTo) {
		return false
	}
	return true
}

func (s *Store) FilterContacts(f ContactFilter) []entity.Contact {
	s.rlockActive()
	defer s.mu.RUnlock()
	out := []entity.Contact{}
	for _, c := range s.contacts {
		if f.match(c) {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (s *Store) FilterLeads(f LeadFilter) []entity.Lead {
	s.rlockActive()
	defer s.mu.RUnlock()
	out := []entity.Lead{}
	for _, l := range s.leads {
		if f.match(l) {
			out = append(out, l.Clone())
		}
	}
	return out
}

// LeadsForContact returns the leads that match the contact by email or
// company. The bool is false when the contact does not exist.
func (s *Store) LeadsForContact(contactID string) ([]entity.Lead, bool) {
	s.rlockActive()
	defer s.mu.RUnlock()
	i := s.contactIndex(contactID)
	if i < 0 {
		return nil, false
	}
	c := s.contacts[i]
	out := []entity.Lead{}
	for _, l := range s.leads {
		if l.MatchesContact(c) {
			out = append(out, l.Clone())
		}
	}
	return out, true
}

type StageTotals struct {
	Stage entity.LeadStage `json:"stage"`
	Count int              `json:"count"`
	Value float64          `json:"value"`
}

type PipelineSummary struct {
	Stages         []StageTotals `json:"stages"`
	OpenLeads      int           `json:"open_leads"`
	TotalValue     float64       `json:"total_value"`
	WeightedValue  float64       `json:"weighted_value"`
	WonValue       float64       `json:"won_value"`
	AverageAIScore float64       `json:"average_ai_score"`
}

// Pipeline aggregates leads per stage. Total and weighted values only count
// open opportunities.
func (s *Store) Pipeline() PipelineSummary {
	s.rlockActive()
	defer s.mu.RUnlock()
	return pipeline(s.leads)
}

func pipeline(leads []entity.Lead) PipelineSummary {
	idx := make(map[entity.LeadStage]int, len(entity.Stages))
	sum := PipelineSummary{Stages: make([]StageTotals, len(entity.Stages))}
	for i, st := range entity.Stages {
		idx[st] = i
		sum.Stages[i].Stage = st
	}

	scoreTotal := 0
	for _, l := range leads {
		if i, ok := idx[l.Stage]; ok {
			sum.Stages[i].Count++
			sum.Stages[i].Value += l.Value
		}
		scoreTotal += l.AIScore
		switch {
		case l.Stage == entity.StageClosedWon:
			sum.WonValue += l.Value
		case l.Stage.Open():
			sum.OpenLeads++
			sum.TotalValue += l.Value
			sum.WeightedValue += l.WeightedValue()
		}
	}
	if len(leads) > 0 {
		sum.AverageAIScore = float64(scoreTotal) / float64(len(leads))
	}
	return sum
}

// Summary is what the dashboard shows.
type Summary struct {
	Loading        bool               `json:"loading"`
	Contacts       int                `json:"contacts"`
	ActiveContacts int                `json:"active_contacts"`
	Leads          int                `json:"leads"`
	Insights       int                `json:"insights"`
	HighPriority   int                `json:"high_priority_insights"`
	ContactValue   float64            `json:"contact_value"`
	Pipeline       PipelineSummary    `json:"pipeline"`
	RecentInsights []entity.AIInsight `json:"recent_insights"`
}

func (s *Store) Summary() Summary {
	s.rlockActive()
	defer s.mu.RUnlock()

	sum := Summary{
		Loading:        s.loading,
		Contacts:       len(s.contacts),
		Leads:          len(s.leads),
		Insights:       len(s.insights),
		Pipeline:       pipeline(s.leads),
		RecentInsights: append([]entity.AIInsight{}, s.insights...),
	}
	for _, c := range s.contacts {
		sum.ContactValue += c.Value
		if c.Status == entity.ContactActive {
			sum.ActiveContacts++
		}
	}
	for _, in := range s.insights {
		if in.Priority == entity.PriorityHigh {
			sum.HighPriority++
		}
	}
	return sum
}

// OverdueLeads lists open leads whose expected close date is before asOf
// (YYYY-MM-DD). Leads without a date are never overdue.
func (s *Store) OverdueLeads(asOf string) []entity.Lead {
	s.rlockActive()
	defer s.mu.RUnlock()
	out := []entity.Lead{}
	for _, l := range s.leads {
		if l.Stage.Open() && l.ExpectedClose != "" && l.ExpectedClose < asOf {
			out = append(out, l.Clone())
		}
	}
	return out
}
