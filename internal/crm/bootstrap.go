package crm

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Dataset is a full snapshot of the three collections.
type Dataset struct {
	Contacts []entity.Contact
	Leads    []entity.Lead
	Insights []entity.AIInsight
}

// Source supplies the dataset the store is seeded with.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
}

type SourceFunc func(ctx context.Context) (Dataset, error)

func (f SourceFunc) Load(ctx context.Context) (Dataset, error) {
	return f(ctx)
}

// BootstrapSource always yields the fixed bootstrap dataset.
var BootstrapSource Source = SourceFunc(func(context.Context) (Dataset, error) {
	return Bootstrap(), nil
})

// Bootstrap returns a fresh copy of the fixed dataset loaded on startup.
func Bootstrap() Dataset {
	return Dataset{
		Contacts: []entity.Contact{
			{
				ID:          "1",
				Name:        "Sarah Johnson",
				Email:       "sarah@techcorp.com",
				Phone:       "+1-555-0123",
				Company:     "TechCorp Inc.",
				Position:    "CTO",
				Source:      "Website",
				Tags:        []string{"decision-maker", "tech-savvy"},
				CreatedAt:   "2024-01-15",
				LastContact: "2024-01-20",
				Value:       50000,
				Status:      entity.ContactActive,
			},
			{
				ID:          "2",
				Name:        "Michael Chen",
				Email:       "mchen@startup.io",
				Phone:       "+1-555-0456",
				Company:     "Startup.io",
				Position:    "Founder",
				Source:      "Referral",
				Tags:        []string{"founder", "early-adopter"},
				CreatedAt:   "2024-01-10",
				LastContact: "2024-01-18",
				Value:       25000,
				Status:      entity.ContactProspect,
			},
		},
		Leads: []entity.Lead{
			{
				ID:            "1",
				Name:          "Enterprise Deal - TechCorp",
				Email:         "sarah@techcorp.com",
				Company:       "TechCorp Inc.",
				Value:         150000,
				Probability:   75,
				Stage:         entity.StageNegotiation,
				AssignedTo:    "John Doe",
				CreatedAt:     "2024-01-15",
				ExpectedClose: "2024-02-28",
				AIScore:       82,
				Notes:         []string{"Strong interest in enterprise features", "Budget approved"},
			},
			{
				ID:            "2",
				Name:          "Startup Package - Startup.io",
				Email:         "mchen@startup.io",
				Company:       "Startup.io",
				Value:         25000,
				Probability:   60,
				Stage:         entity.StageProposal,
				AssignedTo:    "Jane Smith",
				CreatedAt:     "2024-01-10",
				ExpectedClose: "2024-02-15",
				AIScore:       68,
				Notes:         []string{"Price sensitive", "Needs quick implementation"},
			},
		},
		Insights: []entity.AIInsight{
			{
				ID:          "1",
				Type:        entity.InsightPrediction,
				Title:       "High Close Probability",
				Description: "TechCorp deal has 85% chance of closing this month based on engagement patterns",
				Confidence:  85,
				Priority:    entity.PriorityHigh,
				CreatedAt:   "2024-01-20",
			},
			{
				ID:          "2",
				Type:        entity.InsightRecommendation,
				Title:       "Follow-up Opportunity",
				Description: "Contact Michael Chen - optimal time for follow-up based on activity analysis",
				Confidence:  72,
				Priority:    entity.PriorityMedium,
				CreatedAt:   "2024-01-19",
			},
		},
	}
}
