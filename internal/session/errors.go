package session

import (
	"errors"

	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/providers"
)

const genericErrorMessage = "An error occurred while fetching flights."

// Describe reduces a search failure to the single line shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var vErr models.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}

	var netErr *providers.NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}

	var mfErr *providers.MissingFieldError
	if errors.As(err, &mfErr) {
		return "Unexpected response from flight provider: " + mfErr.Error()
	}

	if errors.Is(err, ErrSearchInFlight) {
		return err.Error()
	}

	return genericErrorMessage
}
