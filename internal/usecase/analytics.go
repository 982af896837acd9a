package usecase

import (
	"github.com/xavierca1/ligue-crm/internal/crm"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

type AnalyticsOutput struct {
	Loading  bool                `json:"loading"`
	Insights []entity.AIInsight  `json:"insights"`
	Pipeline crm.PipelineSummary `json:"pipeline"`
}

// AnalyticsUseCase backs the dashboard and analytics screens. Insights are
// read-only.
type AnalyticsUseCase struct {
	Store *crm.Store
}

func NewAnalyticsUseCase(store *crm.Store) *AnalyticsUseCase {
	return &AnalyticsUseCase{Store: store}
}

func (uc *AnalyticsUseCase) Dashboard() (*crm.Summary, error) {
	st, err := store(uc.Store)
	if err != nil {
		return nil, err
	}
	sum := st.Summary()
	return &sum, nil
}

func (uc *AnalyticsUseCase) Analytics() (*AnalyticsOutput, error) {
	st, err := store(uc.Store)
	if err != nil {
		return nil, err
	}
	return &AnalyticsOutput{
		Loading:  st.Loading(),
		Insights: st.Insights(),
		Pipeline: st.Pipeline(),
	}, nil
}
