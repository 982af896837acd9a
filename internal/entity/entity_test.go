package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactApplyOnlyTouchesPresentFields(t *testing.T) {
	c := Contact{ID: "1", Name: "Sarah", Email: "s@x.com", Tags: []string{"a"}, CreatedAt: "2024-01-15", Status: ContactActive}
	email := "sarah@x.com"
	status := ContactInactive

	c.Apply(ContactPatch{Email: &email, Status: &status})

	assert.Equal(t, "Sarah", c.Name)
	assert.Equal(t, "sarah@x.com", c.Email)
	assert.Equal(t, ContactInactive, c.Status)
	assert.Equal(t, []string{"a"}, c.Tags)
	assert.Equal(t, "2024-01-15", c.CreatedAt)
}

func TestLeadMatchesContact(t *testing.T) {
	c := Contact{Email: "Sarah@TechCorp.com", Company: "TechCorp Inc."}

	assert.True(t, Lead{Email: "sarah@techcorp.com"}.MatchesContact(c))
	assert.True(t, Lead{Company: "TechCorp Inc."}.MatchesContact(c))
	assert.False(t, Lead{Email: "other@x.com", Company: "Other"}.MatchesContact(c))
	assert.False(t, Lead{}.MatchesContact(Contact{}))
}

func TestLeadStage(t *testing.T) {
	assert.True(t, StageClosedLost.Valid())
	assert.False(t, LeadStage("won").Valid())
	assert.True(t, StageProposal.Open())
	assert.False(t, StageClosedWon.Open())
}

func TestWeightedValue(t *testing.T) {
	assert.InDelta(t, 112500, Lead{Value: 150000, Probability: 75}.WeightedValue(), 0.001)
}
