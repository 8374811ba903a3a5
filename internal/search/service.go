package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/providers"
)

type Service struct {
	provider providers.Provider
	logger   *slog.Logger
}

type Result struct {
	Criteria   models.SearchCriteria
	Flights    []models.FlightSummary
	Provider   string
	SearchTime time.Duration
}

func NewService(provider providers.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// Search validates the criteria and issues exactly one provider request.
// Validation failures return before anything is sent.
func (s *Service) Search(ctx context.Context, criteria models.SearchCriteria) (*Result, error) {
	if err := criteria.Validate(); err != nil {
		s.logger.Debug("search rejected", "error", err)
		return nil, err
	}

	log := s.logger.With(
		"provider", s.provider.Name(),
		"source", criteria.SourceAirportCode,
		"destination", criteria.DestinationAirportCode,
		"date", criteria.Date,
	)
	log.Info("searching flights")

	start := time.Now()
	flights, err := s.provider.Search(ctx, criteria)
	elapsed := time.Since(start)
	if err != nil {
		log.Error("flight search failed", "error", err, "duration_ms", elapsed.Milliseconds())
		return nil, providers.NewProviderError(s.provider.Name(), err)
	}

	log.Info("flight search completed", "results", len(flights), "duration_ms", elapsed.Milliseconds())

	return &Result{
		Criteria:   criteria,
		Flights:    flights,
		Provider:   s.provider.Name(),
		SearchTime: elapsed,
	}, nil
}
