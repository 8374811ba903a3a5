package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightfinder/internal/logging"
	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/providers"
	"github.com/dharmasatrya/flightfinder/internal/search"
	"github.com/dharmasatrya/flightfinder/internal/store"
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

func newTestHandler(p providers.Provider) *SearchHandler {
	svc := search.NewService(p, logging.Discard())
	return NewSearchHandler(svc, store.NewRegistry(store.NewMemoryStore(time.Minute), time.Minute), logging.Discard())
}

func doSearch(t *testing.T, h *SearchHandler, query string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/flights/search?"+query, nil)
	rec := httptest.NewRecorder()
	return rec, h.Search(e.NewContext(req, rec))
}

func TestSearch_Success(t *testing.T) {
	p := &fakeProvider{flights: []models.FlightSummary{{
		CarrierName:  "Delta",
		FlightNumber: "DL123",
		PurchaseOptions: []models.PurchaseOption{
			{ProviderID: "Expedia", URL: "https://example.com/expedia", TotalPrice: 5000, Currency: "INR"},
		},
	}}}
	h := newTestHandler(p)

	rec, err := doSearch(t, h, "sourceAirportCode=JFK&destinationAirportCode=LAX&sortOrder=duration&numAdults=2")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Metadata.TotalResults != 1 || resp.Metadata.Provider != "fake" {
		t.Errorf("Metadata = %+v", resp.Metadata)
	}
	if resp.Flights[0].PurchaseOptions[0].TotalPrice != 5000 {
		t.Errorf("Flights = %+v", resp.Flights)
	}

	// Absent fields keep their defaults and enum values are normalized.
	want := models.SearchCriteria{
		SourceAirportCode:      "JFK",
		DestinationAirportCode: "LAX",
		SortOrder:              models.SortByDuration,
		ClassOfService:         models.ClassEconomy,
		NumAdults:              2,
	}
	if resp.SearchCriteria != want {
		t.Errorf("SearchCriteria = %+v, want %+v", resp.SearchCriteria, want)
	}
	if p.received != want {
		t.Errorf("provider received %+v", p.received)
	}
}

func TestSearch_EmptyResultIsArray(t *testing.T) {
	h := newTestHandler(&fakeProvider{})

	rec, err := doSearch(t, h, "sourceAirportCode=JFK&destinationAirportCode=LAX")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["flights"]) != "[]" {
		t.Errorf("flights = %s, want []", raw["flights"])
	}
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		providerErr error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantCalls   int
	}{
		{
			name:        "missing destination",
			query:       "sourceAirportCode=JFK",
			wantStatus:  http.StatusBadRequest,
			wantCode:    "validation_error",
			wantMessage: "destination airport code is required",
		},
		{
			name:        "zero adults",
			query:       "sourceAirportCode=JFK&destinationAirportCode=LAX&numAdults=0",
			wantStatus:  http.StatusBadRequest,
			wantCode:    "validation_error",
			wantMessage: "number of adults must be at least 1",
		},
		{
			name:       "unparseable adults",
			query:      "sourceAirportCode=JFK&destinationAirportCode=LAX&numAdults=many",
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:        "provider status",
			query:       "sourceAirportCode=JFK&destinationAirportCode=LAX",
			providerErr: &providers.NetworkError{StatusCode: 500, Status: "500 Internal Server Error"},
			wantStatus:  http.StatusBadGateway,
			wantCode:    "provider_error",
			wantMessage: "request failed with status code 500",
			wantCalls:   1,
		},
		{
			name:        "malformed flight",
			query:       "sourceAirportCode=JFK&destinationAirportCode=LAX",
			providerErr: &providers.MissingFieldError{Flight: 0, Field: "segments[0]"},
			wantStatus:  http.StatusBadGateway,
			wantCode:    "unexpected_response",
			wantMessage: "Unexpected response from flight provider: flight 0: missing segments[0]",
			wantCalls:   1,
		},
		{
			name:        "unknown failure",
			query:       "sourceAirportCode=JFK&destinationAirportCode=LAX",
			providerErr: errors.New("boom"),
			wantStatus:  http.StatusBadGateway,
			wantCode:    "provider_error",
			wantMessage: "An error occurred while fetching flights.",
			wantCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{err: tt.providerErr}
			h := newTestHandler(p)

			rec, err := doSearch(t, h, tt.query)
			if err != nil {
				t.Fatalf("Search() error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var resp models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error != tt.wantCode {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantCode)
			}
			if tt.wantMessage != "" && resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
			if p.calls != tt.wantCalls {
				t.Errorf("provider calls = %d, want %d", p.calls, tt.wantCalls)
			}
		})
	}
}

func TestSessionID_IssuesCookie(t *testing.T) {
	h := newTestHandler(&fakeProvider{})
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()

	id := h.sessionID(e.NewContext(req, rec))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != id {
		t.Fatalf("cookies = %v, id = %q", cookies, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	rec = httptest.NewRecorder()
	if got := h.sessionID(e.NewContext(req, rec)); got != id {
		t.Errorf("sessionID() = %q, want %q", got, id)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("a valid cookie should not be reissued")
	}
}

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	if err := HealthHandler(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
