package usecase

import (
	"errors"

	"github.com/xavierca1/ligue-crm/internal/crm"
)

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeProviderMissing = "PROVIDER_MISSING"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// store resolves the injected handle; a missing store is a wiring bug.
func store(s *crm.Store) (*crm.Store, error) {
	st, err := crm.Use(s)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeProviderMissing,
			Message: "crm store is not wired",
			Err:     err,
		}
	}
	return st, nil
}

func notFound(kind, id string) error {
	return &DomainError{Code: CodeNotFound, Message: kind + " " + id + " not found"}
}
