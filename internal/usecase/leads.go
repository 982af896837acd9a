package usecase

import (
	"github.com/xavierca1/ligue-crm/internal/crm"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ListLeadsOutput struct {
	Loading bool          `json:"loading"`
	Leads   []entity.Lead `json:"leads"`
}

type LeadUseCase struct {
	Store *crm.Store
}

func NewLeadUseCase(store *crm.Store) *LeadUseCase {
	return &LeadUseCase{Store: store}
}

func (uc *LeadUseCase) List(filter crm.LeadFilter) (*ListLeadsOutput, error) {
	st, err := store(uc.Store)
	if err != nil {
		return nil, err
	}
	return &ListLeadsOutput{
		Loading: st.Loading(),
		Leads:   st.FilterLeads(filter),
	}, nil
}

func (uc *LeadUseCase) Create(input entity.LeadInput) (*entity.Lead, error) {
	st, err := store(uc.Store)
	if err != nil {
		return nil, err
	}
	if errs := ValidateLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	l := st.AddLead(input)
	return &l, nil
}

func (uc *LeadUseCase) Update(id string, patch entity.LeadPatch) (*entity.Lead, error) {
	st, err := store(uc.Store)
	if err != nil {
		return nil, err
	}
	if errs := ValidateLeadPatch(patch); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	st.UpdateLead(id, patch)
	l, ok := st.Lead(id)
	if !ok {
		return nil, notFound("lead", id)
	}
	return &l, nil
}

func (uc *LeadUseCase) Delete(id string) error {
	st, err := store(uc.Store)
	if err != nil {
		return err
	}
	st.DeleteLead(id)
	return nil
}
