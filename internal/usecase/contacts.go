package usecase

import (
	"github.com/xavierca1/ligue-crm/internal/crm"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ListContactsOutput struct {
	Loading  bool             `json:"loading"`
	Contacts []entity.Contact `json:"contacts"`
}

type ContactLeadsOutput struct {
	ContactID string        `json:"contact_id"`
	Leads     []entity.Lead `json:"leads"`
}

// ContactUseCase validates input at the edge and forwards to the store.
type ContactUseCase struct {
	Store *crm.Store
}

func NewContactUseCase(store *crm.Store) *ContactUseCase {
	return &ContactUseCase{Store: store}
}

func (uc *ContactUseCase) List(filter crm.ContactFilter) (*ListContactsOutput, error) {
	st, err := store(uc.Store)
	if err != nil {
		return nil, err
	}
	return &ListContactsOutput{
		Loading:  st.Loading(),
		Contacts: st.FilterContacts(filter),
	}, nil
}

func (uc *ContactUseCase) Create(input entity.ContactInput) (*entity.Contact, error) {
	st, err := store(uc.Store)
	if err != nil {
		return nil, err
	}
	if errs := ValidateContactInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	c := st.AddContact(input)
	return &c, nil
}

// Update applies the patch and returns the stored record. The store ignores
// unknown ids; the lookup afterwards is what turns that into NOT_FOUND.
func (uc *ContactUseCase) Update(id string, patch entity.ContactPatch) (*entity.Contact, error) {
	st, err := store(uc.Store)
	if err != nil {
		return nil, err
	}
	if errs := ValidateContactPatch(patch); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	st.UpdateContact(id, patch)
	c, ok := st.Contact(id)
	if !ok {
		return nil, notFound("contact", id)
	}
	return &c, nil
}

func (uc *ContactUseCase) Delete(id string) error {
	st, err := store(uc.Store)
	if err != nil {
		return err
	}
	st.DeleteContact(id)
	return nil
}

func (uc *ContactUseCase) Leads(id string) (*ContactLeadsOutput, error) {
	st, err := store(uc.Store)
	if err != nil {
		return nil, err
	}
	leads, ok := st.LeadsForContact(id)
	if !ok {
		return nil, notFound("contact", id)
	}
	return &ContactLeadsOutput{ContactID: id, Leads: leads}, nil
}
