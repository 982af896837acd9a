package entity

import "strings"

// DateLayout is how every CRM date is rendered (calendar day, no time).
const DateLayout = "2006-01-02"

type ContactStatus string

const (
	ContactActive   ContactStatus = "active"
	ContactInactive ContactStatus = "inactive"
	ContactProspect ContactStatus = "prospect"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactActive, ContactInactive, ContactProspect:
		return true
	}
	return false
}

// Entidade: Contact
type Contact struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Company     string        `json:"company"`
	Position    string        `json:"position"`
	Source      string        `json:"source"`
	Tags        []string      `json:"tags"`
	CreatedAt   string        `json:"created_at"`
	LastContact string        `json:"last_contact"`
	Value       float64       `json:"value"`
	Status      ContactStatus `json:"status"`
}

// ContactInput carries everything a new contact needs except the fields the
// store assigns (ID and CreatedAt).
type ContactInput struct {
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Company     string        `json:"company"`
	Position    string        `json:"position"`
	Source      string        `json:"source"`
	Tags        []string      `json:"tags"`
	LastContact string        `json:"last_contact"`
	Value       float64       `json:"value"`
	Status      ContactStatus `json:"status"`
}

// ContactPatch is a partial update. Nil fields are left untouched.
type ContactPatch struct {
	Name        *string        `json:"name,omitempty"`
	Email       *string        `json:"email,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Company     *string        `json:"company,omitempty"`
	Position    *string        `json:"position,omitempty"`
	Source      *string        `json:"source,omitempty"`
	Tags        *[]string      `json:"tags,omitempty"`
	LastContact *string        `json:"last_contact,omitempty"`
	Value       *float64       `json:"value,omitempty"`
	Status      *ContactStatus `json:"status,omitempty"`
}

func NewContact(id, createdAt string, in ContactInput) Contact {
	return Contact{
		ID:          id,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Company:     in.Company,
		Position:    in.Position,
		Source:      in.Source,
		Tags:        cloneStrings(in.Tags),
		CreatedAt:   createdAt,
		LastContact: in.LastContact,
		Value:       in.Value,
		Status:      in.Status,
	}
}

// Apply merges the present fields of p into c.
func (c *Contact) Apply(p ContactPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.Position != nil {
		c.Position = *p.Position
	}
	if p.Source != nil {
		c.Source = *p.Source
	}
	if p.Tags != nil {
		c.Tags = cloneStrings(*p.Tags)
	}
	if p.LastContact != nil {
		c.LastContact = *p.LastContact
	}
	if p.Value != nil {
		c.Value = *p.Value
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}

// Clone returns a copy that shares no slices with c.
func (c Contact) Clone() Contact {
	c.Tags = cloneStrings(c.Tags)
	return c
}

func (c Contact) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
