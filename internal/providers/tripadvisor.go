package providers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dharmasatrya/flightfinder/internal/models"
)

const (
	DefaultTripAdvisorBaseURL = "https://tripadvisor16.p.rapidapi.com"
	DefaultTripAdvisorHost    = "tripadvisor16.p.rapidapi.com"

	searchFlightsPath = "/api/v1/flights/searchFlights"
	maxResponseBytes  = 16 << 20
)

var ErrMissingAPIKey = errors.New("tripadvisor: api key is required")

type TripAdvisorConfig struct {
	BaseURL string
	Host    string
	APIKey  string
	Timeout time.Duration
	// ForwardAdults sends the user's adult count instead of the constant 1.
	ForwardAdults bool
	HTTPClient    *http.Client
}

type TripAdvisorProvider struct {
	baseURL       string
	host          string
	apiKey        string
	forwardAdults bool
	client        *http.Client
}

func NewTripAdvisorProvider(cfg TripAdvisorConfig) (*TripAdvisorProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTripAdvisorBaseURL
	}
	if cfg.Host == "" {
		cfg.Host = DefaultTripAdvisorHost
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &TripAdvisorProvider{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		host:          cfg.Host,
		apiKey:        cfg.APIKey,
		forwardAdults: cfg.ForwardAdults,
		client:        client,
	}, nil
}

func (p *TripAdvisorProvider) Name() string {
	return "tripadvisor"
}

func (p *TripAdvisorProvider) Search(ctx context.Context, criteria models.SearchCriteria) ([]models.FlightSummary, error) {
	endpoint := p.baseURL + searchFlightsPath + "?" + BuildQuery(criteria, p.forwardAdults).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", p.apiKey)
	req.Header.Set("X-RapidAPI-Host", p.host)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, &NetworkError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	return Project(body)
}

// BuildQuery maps criteria onto the searchFlights query contract. Itinerary
// type, page, currency and senior count are fixed. numAdults is 1 unless
// forwardAdults is set.
func BuildQuery(criteria models.SearchCriteria, forwardAdults bool) url.Values {
	numAdults := 1
	if forwardAdults {
		numAdults = criteria.NumAdults
	}

	q := url.Values{}
	q.Set("sourceAirportCode", criteria.SourceAirportCode)
	q.Set("destinationAirportCode", criteria.DestinationAirportCode)
	if criteria.Date != "" {
		q.Set("date", criteria.Date)
	}
	q.Set("itineraryType", models.ItineraryOneWay)
	q.Set("sortOrder", string(criteria.SortOrder))
	q.Set("numAdults", strconv.Itoa(numAdults))
	q.Set("numSeniors", strconv.Itoa(models.NumSeniors))
	q.Set("classOfService", string(criteria.ClassOfService))
	q.Set("pageNumber", strconv.Itoa(models.PageNumber))
	q.Set("currencyCode", models.CurrencyINR)
	return q
}
