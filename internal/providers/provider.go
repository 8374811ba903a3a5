package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/dharmasatrya/flightfinder/internal/models"
)

type Provider interface {
	Name() string
	Search(ctx context.Context, criteria models.SearchCriteria) ([]models.FlightSummary, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}

// NetworkError covers transport failures and non-2xx responses. StatusCode is
// zero when no response was received.
type NetworkError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request failed with status code %d", e.StatusCode)
	}
	if e.Err != nil {
		return "request failed: " + e.Err.Error()
	}
	return "request failed"
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

var ErrMissingField = errors.New("missing field in flight response")

// MissingFieldError reports a flight whose shape does not match the expected
// response layout.
type MissingFieldError struct {
	Flight int
	Field  string
	Err    error
}

func (e *MissingFieldError) Error() string {
	msg := fmt.Sprintf("flight %d: missing %s", e.Flight, e.Field)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

func (e *MissingFieldError) Unwrap() error {
	return e.Err
}
