package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func TestFilterContacts(t *testing.T) {
	s := seededStore(t)

	tests := []struct {
		name   string
		filter ContactFilter
		want   []string
	}{
		{"empty filter", ContactFilter{}, []string{"1", "2"}},
		{"by status", ContactFilter{Status: entity.ContactProspect}, []string{"2"}},
		{"by tag", ContactFilter{Tag: "Tech-Savvy"}, []string{"1"}},
		{"search company", ContactFilter{Search: "startup"}, []string{"2"}},
		{"search email", ContactFilter{Search: "SARAH@"}, []string{"1"}},
		{"no match", ContactFilter{Search: "globex"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []string{}
			for _, c := range s.FilterContacts(tt.filter) {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterLeads(t *testing.T) {
	s := seededStore(t)

	byStage := s.FilterLeads(LeadFilter{Stage: entity.StageProposal})
	require.Len(t, byStage, 1)
	assert.Equal(t, "2", byStage[0].ID)

	byOwner := s.FilterLeads(LeadFilter{AssignedTo: "john doe"})
	require.Len(t, byOwner, 1)
	assert.Equal(t, "1", byOwner[0].ID)
}

func TestLeadsForContactMatchesByEmailOrCompany(t *testing.T) {
	s := seededStore(t)
	in := sampleLead()
	in.Email = "other@techcorp.com"
	in.Company = "TechCorp Inc."
	extra := s.AddLead(in)

	leads, ok := s.LeadsForContact("1")
	require.True(t, ok)
	require.Len(t, leads, 2)
	assert.Equal(t, "1", leads[0].ID)
	assert.Equal(t, extra.ID, leads[1].ID)

	_, ok = s.LeadsForContact("missing")
	assert.False(t, ok)
}

func TestPipelineSummary(t *testing.T) {
	s := seededStore(t)
	won := sampleLead()
	won.Stage = entity.StageClosedWon
	won.Value = 10000
	s.AddLead(won)

	p := s.Pipeline()

	assert.Equal(t, 2, p.OpenLeads)
	assert.Equal(t, 175000.0, p.TotalValue)
	assert.InDelta(t, 150000*0.75+25000*0.60, p.WeightedValue, 0.001)
	assert.Equal(t, 10000.0, p.WonValue)
	require.Len(t, p.Stages, len(entity.Stages))
	assert.Equal(t, StageTotals{Stage: entity.StageNegotiation, Count: 1, Value: 150000}, p.Stages[3])
	assert.Equal(t, StageTotals{Stage: entity.StageClosedWon, Count: 1, Value: 10000}, p.Stages[4])
}

func TestSummaryWhileLoading(t *testing.T) {
	s := newTestStore(t)

	sum := s.Summary()
	assert.True(t, sum.Loading)
	assert.Zero(t, sum.Contacts)
	assert.Zero(t, sum.Pipeline.AverageAIScore)
	assert.Empty(t, sum.RecentInsights)
}

func TestSummaryAfterSeed(t *testing.T) {
	s := seededStore(t)

	sum := s.Summary()
	assert.False(t, sum.Loading)
	assert.Equal(t, 2, sum.Contacts)
	assert.Equal(t, 1, sum.ActiveContacts)
	assert.Equal(t, 2, sum.Leads)
	assert.Equal(t, 1, sum.HighPriority)
	assert.Equal(t, 75000.0, sum.ContactValue)
	assert.Equal(t, 75.0, sum.Pipeline.AverageAIScore)
}

func TestOverdueLeads(t *testing.T) {
	s := seededStore(t)
	closed := entity.StageClosedLost
	s.UpdateLead("2", entity.LeadPatch{Stage: &closed})

	ids := func(leads []entity.Lead) []string {
		out := []string{}
		for _, l := range leads {
			out = append(out, l.ID)
		}
		return out
	}

	assert.Equal(t, []string{}, ids(s.OverdueLeads("2024-02-01")))
	assert.Equal(t, []string{"1"}, ids(s.OverdueLeads("2024-03-01")))

	s.AddLead(entity.LeadInput{Name: "Undated", Stage: entity.StageProspect})
	assert.Len(t, s.OverdueLeads("2099-01-01"), 1)
}
