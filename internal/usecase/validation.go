package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

var nonDigits = regexp.MustCompile(`\D`)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateContactInput(input entity.ContactInput) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateName(input.Name)...)
	errors = append(errors, validateEmail(input.Email)...)

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}
	if input.LastContact != "" && !isValidDate(input.LastContact) {
		errors = append(errors, ValidationError{"last_contact", "must be a valid date (YYYY-MM-DD)"})
	}
	if input.Value < 0 {
		errors = append(errors, ValidationError{"value", "must not be negative"})
	}
	if !input.Status.Valid() {
		errors = append(errors, ValidationError{"status", "must be active, inactive or prospect"})
	}

	return errors
}

func ValidateContactPatch(p entity.ContactPatch) []ValidationError {
	var errors []ValidationError

	if p.Name != nil {
		errors = append(errors, validateName(*p.Name)...)
	}
	if p.Email != nil {
		errors = append(errors, validateEmail(*p.Email)...)
	}
	if p.Phone != nil && *p.Phone != "" && !isValidPhoneNumber(*p.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}
	if p.LastContact != nil && *p.LastContact != "" && !isValidDate(*p.LastContact) {
		errors = append(errors, ValidationError{"last_contact", "must be a valid date (YYYY-MM-DD)"})
	}
	if p.Value != nil && *p.Value < 0 {
		errors = append(errors, ValidationError{"value", "must not be negative"})
	}
	if p.Status != nil && !p.Status.Valid() {
		errors = append(errors, ValidationError{"status", "must be active, inactive or prospect"})
	}

	return errors
}

func ValidateLeadInput(input entity.LeadInput) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateName(input.Name)...)
	if input.Email != "" {
		errors = append(errors, validateEmail(input.Email)...)
	}
	if input.Value < 0 {
		errors = append(errors, ValidationError{"value", "must not be negative"})
	}
	if input.Probability < 0 || input.Probability > 100 {
		errors = append(errors, ValidationError{"probability", "must be between 0 and 100"})
	}
	if !input.Stage.Valid() {
		errors = append(errors, ValidationError{"stage", "is not a pipeline stage"})
	}
	if input.ExpectedClose != "" && !isValidDate(input.ExpectedClose) {
		errors = append(errors, ValidationError{"expected_close", "must be a valid date (YYYY-MM-DD)"})
	}

	return errors
}

// ValidateLeadPatch checks shapes only. It does not refuse created_at or
// ai_score; see DESIGN.md.
func ValidateLeadPatch(p entity.LeadPatch) []ValidationError {
	var errors []ValidationError

	if p.Name != nil {
		errors = append(errors, validateName(*p.Name)...)
	}
	if p.Email != nil && *p.Email != "" {
		errors = append(errors, validateEmail(*p.Email)...)
	}
	if p.Value != nil && *p.Value < 0 {
		errors = append(errors, ValidationError{"value", "must not be negative"})
	}
	if p.Probability != nil && (*p.Probability < 0 || *p.Probability > 100) {
		errors = append(errors, ValidationError{"probability", "must be between 0 and 100"})
	}
	if p.Stage != nil && !p.Stage.Valid() {
		errors = append(errors, ValidationError{"stage", "is not a pipeline stage"})
	}
	if p.CreatedAt != nil && !isValidDate(*p.CreatedAt) {
		errors = append(errors, ValidationError{"created_at", "must be a valid date (YYYY-MM-DD)"})
	}
	if p.ExpectedClose != nil && *p.ExpectedClose != "" && !isValidDate(*p.ExpectedClose) {
		errors = append(errors, ValidationError{"expected_close", "must be a valid date (YYYY-MM-DD)"})
	}
	if p.AIScore != nil && (*p.AIScore < 0 || *p.AIScore > 100) {
		errors = append(errors, ValidationError{"ai_score", "must be between 0 and 100"})
	}

	return errors
}

func validationFailed(errs []ValidationError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Field + " (" + e.Message + ")"
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(msgs, ", "),
	}
}

func validateName(name string) []ValidationError {
	switch {
	case strings.TrimSpace(name) == "":
		return []ValidationError{{"name", "is required"}}
	case len(name) > 200:
		return []ValidationError{{"name", "must not exceed 200 characters"}}
	}
	return nil
}

func validateEmail(email string) []ValidationError {
	if strings.TrimSpace(email) == "" {
		return []ValidationError{{"email", "is required"}}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []ValidationError{{"email", "is invalid"}}
	}
	return nil
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 7 && len(cleaned) <= 15
}

func isValidDate(dateStr string) bool {
	_, err := time.Parse(entity.DateLayout, dateStr)
	return err == nil
}
