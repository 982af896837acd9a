package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func fields(errs []ValidationError) []string {
	out := []string{}
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateContactInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.ContactInput)
		want   []string
	}{
		{"valid", func(*entity.ContactInput) {}, []string{}},
		{"missing name", func(c *entity.ContactInput) { c.Name = "  " }, []string{"name"}},
		{"missing email", func(c *entity.ContactInput) { c.Email = "" }, []string{"email"}},
		{"short phone", func(c *entity.ContactInput) { c.Phone = "123" }, []string{"phone"}},
		{"bad date", func(c *entity.ContactInput) { c.LastContact = "20/01/2024" }, []string{"last_contact"}},
		{"unknown status", func(c *entity.ContactInput) { c.Status = "" }, []string{"status"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validContact()
			tt.mutate(&in)
			assert.Equal(t, tt.want, fields(ValidateContactInput(in)))
		})
	}
}

func TestValidateContactPatchIgnoresAbsentFields(t *testing.T) {
	assert.Empty(t, ValidateContactPatch(entity.ContactPatch{}))

	empty := ""
	assert.Equal(t, []string{"name"}, fields(ValidateContactPatch(entity.ContactPatch{Name: &empty})))
}

func TestValidateLeadInput(t *testing.T) {
	in := validLead()
	assert.Empty(t, ValidateLeadInput(in))

	in.Probability = -1
	in.ExpectedClose = "soon"
	assert.Equal(t, []string{"probability", "expected_close"}, fields(ValidateLeadInput(in)))
}

func TestValidateLeadPatch(t *testing.T) {
	stage := entity.LeadStage("lost")
	created := "yesterday"
	assert.Equal(t, []string{"stage", "created_at"},
		fields(ValidateLeadPatch(entity.LeadPatch{Stage: &stage, CreatedAt: &created})))
}
