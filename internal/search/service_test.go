package search

import (
	"context"
	"errors"
	"testing"

	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/providers"
)

type fakeProvider struct {
	calls    int
	received models.SearchCriteria
	flights  []models.FlightSummary
	err      error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Search(ctx context.Context, c models.SearchCriteria) ([]models.FlightSummary, error) {
	f.calls++
	f.received = c
	return f.flights, f.err
}

func TestService_SearchRejectsBeforeNetwork(t *testing.T) {
	tests := []struct {
		name     string
		criteria models.SearchCriteria
		wantErr  error
	}{
		{"zero adults", models.SearchCriteria{SourceAirportCode: "JFK", DestinationAirportCode: "LAX", NumAdults: 0}, models.ErrInvalidNumAdults},
		{"negative adults", models.SearchCriteria{SourceAirportCode: "JFK", DestinationAirportCode: "LAX", NumAdults: -1}, models.ErrInvalidNumAdults},
		{"missing source", models.SearchCriteria{DestinationAirportCode: "LAX", NumAdults: 1}, models.ErrMissingSourceAirport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{}
			svc := NewService(p, nil)

			_, err := svc.Search(context.Background(), tt.criteria)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Search() error = %v, want %v", err, tt.wantErr)
			}
			if p.calls != 0 {
				t.Errorf("provider called %d times, want 0", p.calls)
			}
		})
	}
}

func TestService_SearchAppliesDefaults(t *testing.T) {
	p := &fakeProvider{flights: []models.FlightSummary{{FlightNumber: "DL123"}}}
	svc := NewService(p, nil)

	res, err := svc.Search(context.Background(), models.SearchCriteria{SourceAirportCode: "JFK", DestinationAirportCode: "LAX", NumAdults: 1})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if p.received.SortOrder != models.SortByPrice || p.received.ClassOfService != models.ClassEconomy {
		t.Errorf("provider received %+v, want defaults applied", p.received)
	}
	if res.Provider != "fake" || len(res.Flights) != 1 || res.Criteria.SortOrder != models.SortByPrice {
		t.Errorf("Search() = %+v", res)
	}
}

func TestService_SearchWrapsProviderError(t *testing.T) {
	netErr := &providers.NetworkError{StatusCode: 500}
	svc := NewService(&fakeProvider{err: netErr}, nil)

	_, err := svc.Search(context.Background(), models.SearchCriteria{SourceAirportCode: "JFK", DestinationAirportCode: "LAX", NumAdults: 1})

	var pErr *providers.ProviderError
	if !errors.As(err, &pErr) || pErr.Provider != "fake" {
		t.Fatalf("Search() error = %v, want *ProviderError from fake", err)
	}
	var got *providers.NetworkError
	if !errors.As(err, &got) || got != netErr {
		t.Errorf("ProviderError should unwrap to the NetworkError")
	}
}
