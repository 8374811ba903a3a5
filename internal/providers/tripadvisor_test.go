package providers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dharmasatrya/flightfinder/internal/models"
)

func TestBuildQuery_FixedParameters(t *testing.T) {
	inputs := []models.SearchCriteria{
		{SourceAirportCode: "JFK", DestinationAirportCode: "LAX", Date: "2024-05-01", SortOrder: models.SortByPrice, ClassOfService: models.ClassEconomy, NumAdults: 1},
		{SourceAirportCode: "DEL", DestinationAirportCode: "BOM", SortOrder: models.SortByDuration, ClassOfService: models.ClassBusiness, NumAdults: 4},
		{SourceAirportCode: "BLR", DestinationAirportCode: "BLR", Date: "tomorrow", SortOrder: models.SortByPrice, ClassOfService: models.ClassEconomy, NumAdults: 9},
	}

	for _, in := range inputs {
		for _, forward := range []bool{false, true} {
			q := BuildQuery(in, forward)
			fixed := map[string]string{
				"itineraryType": "ONE_WAY",
				"pageNumber":    "1",
				"currencyCode":  "INR",
				"numSeniors":    "0",
			}
			for key, want := range fixed {
				if got := q.Get(key); got != want {
					t.Errorf("BuildQuery(%+v, %v)[%s] = %q, want %q", in, forward, key, got, want)
				}
			}
			if q.Get("sourceAirportCode") != in.SourceAirportCode ||
				q.Get("destinationAirportCode") != in.DestinationAirportCode {
				t.Errorf("BuildQuery(%+v) airports = %s/%s", in, q.Get("sourceAirportCode"), q.Get("destinationAirportCode"))
			}
			if q.Get("sortOrder") != string(in.SortOrder) || q.Get("classOfService") != string(in.ClassOfService) {
				t.Errorf("BuildQuery(%+v) enums = %s/%s", in, q.Get("sortOrder"), q.Get("classOfService"))
			}
		}
	}
}

func TestBuildQuery_NumAdults(t *testing.T) {
	c := models.SearchCriteria{SourceAirportCode: "JFK", DestinationAirportCode: "LAX", NumAdults: 3}

	if got := BuildQuery(c, false).Get("numAdults"); got != "1" {
		t.Errorf("numAdults without forwarding = %q, want 1", got)
	}
	if got := BuildQuery(c, true).Get("numAdults"); got != "3" {
		t.Errorf("numAdults with forwarding = %q, want 3", got)
	}
}

func TestBuildQuery_DateOmittedWhenEmpty(t *testing.T) {
	q := BuildQuery(models.SearchCriteria{SourceAirportCode: "JFK", DestinationAirportCode: "LAX", NumAdults: 1}, false)
	if q.Has("date") {
		t.Errorf("date should be omitted, got %q", q.Get("date"))
	}
}

func TestNewTripAdvisorProvider_RequiresAPIKey(t *testing.T) {
	if _, err := NewTripAdvisorProvider(TripAdvisorConfig{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("NewTripAdvisorProvider() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestTripAdvisorProvider_Search(t *testing.T) {
	fixture := loadFixture(t, "search_flights.json")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/v1/flights/searchFlights" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("X-RapidAPI-Key"); got != "test-key" {
			t.Errorf("X-RapidAPI-Key = %q", got)
		}
		if got := r.Header.Get("X-RapidAPI-Host"); got != "tripadvisor16.p.rapidapi.com" {
			t.Errorf("X-RapidAPI-Host = %q", got)
		}
		q := r.URL.Query()
		if q.Get("sourceAirportCode") != "JFK" || q.Get("destinationAirportCode") != "LAX" || q.Get("date") != "2024-05-01" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	}))
	defer ts.Close()

	p, err := NewTripAdvisorProvider(TripAdvisorConfig{BaseURL: ts.URL + "/", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewTripAdvisorProvider() error: %v", err)
	}

	flights, err := p.Search(context.Background(), models.SearchCriteria{
		SourceAirportCode:      "JFK",
		DestinationAirportCode: "LAX",
		Date:                   "2024-05-01",
		SortOrder:              models.SortByPrice,
		ClassOfService:         models.ClassEconomy,
		NumAdults:              1,
	})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(flights) != 2 || flights[0].FlightNumber != "DL123" {
		t.Errorf("Search() = %+v", flights)
	}
}

func TestTripAdvisorProvider_SearchNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"You are not subscribed to this API."}`, http.StatusForbidden)
	}))
	defer ts.Close()

	p, _ := NewTripAdvisorProvider(TripAdvisorConfig{BaseURL: ts.URL, APIKey: "bad-key"})
	_, err := p.Search(context.Background(), models.SearchCriteria{SourceAirportCode: "JFK", DestinationAirportCode: "LAX", NumAdults: 1})

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Search() error = %v, want *NetworkError", err)
	}
	if netErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", netErr.StatusCode)
	}
	if netErr.Error() != "request failed with status code 403" {
		t.Errorf("Error() = %q", netErr.Error())
	}
}

func TestTripAdvisorProvider_SearchConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	p, _ := NewTripAdvisorProvider(TripAdvisorConfig{BaseURL: "http://" + addr, APIKey: "test-key"})
	_, err = p.Search(context.Background(), models.SearchCriteria{SourceAirportCode: "JFK", DestinationAirportCode: "LAX", NumAdults: 1})

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Search() error = %v, want *NetworkError", err)
	}
	if netErr.StatusCode != 0 || netErr.Unwrap() == nil {
		t.Errorf("transport failure should carry the cause and no status: %+v", netErr)
	}
}

func TestTripAdvisorProvider_SearchMalformedFlight(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"flights":[{"segments":[]}]}}`))
	}))
	defer ts.Close()

	p, _ := NewTripAdvisorProvider(TripAdvisorConfig{BaseURL: ts.URL, APIKey: "test-key"})
	_, err := p.Search(context.Background(), models.SearchCriteria{SourceAirportCode: "JFK", DestinationAirportCode: "LAX", NumAdults: 1})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("Search() error = %v, want ErrMissingField", err)
	}
}
