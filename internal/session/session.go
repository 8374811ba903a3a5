// Package session holds the state of one user's search form: whether a
// search is in flight, the latest successful result list and the current
// error line.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/search"
)

type State int

const (
	Idle State = iota
	Searching
	Success
	Failure
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Searching:
		return "searching"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

var ErrSearchInFlight = errors.New("a search is already in progress")

type Searcher interface {
	Search(ctx context.Context, criteria models.SearchCriteria) (*search.Result, error)
}

// Snapshot is a copy of a session's slots, safe to render or persist.
type Snapshot struct {
	State     State                  `json:"state"`
	Criteria  *models.SearchCriteria `json:"criteria,omitempty"`
	Flights   []models.FlightSummary `json:"flights"`
	Error     string                 `json:"error,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type Session struct {
	mu        sync.Mutex
	state     State
	criteria  *models.SearchCriteria
	flights   []models.FlightSummary
	errMsg    string
	updatedAt time.Time
	now       func() time.Time
}

func New() *Session {
	return &Session{
		flights: []models.FlightSummary{},
		now:     time.Now,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CanSubmit reports whether the submit control is enabled.
func (s *Session) CanSubmit() bool {
	return s.State() != Searching
}

// Begin moves the session to Searching and clears the error line. The result
// list is kept until the search completes.
func (s *Session) Begin(criteria models.SearchCriteria) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Searching {
		return ErrSearchInFlight
	}
	s.state = Searching
	s.criteria = &criteria
	s.errMsg = ""
	s.updatedAt = s.now()
	return nil
}

// Complete replaces the result list wholesale.
func (s *Session) Complete(flights []models.FlightSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Searching {
		return
	}
	if flights == nil {
		flights = []models.FlightSummary{}
	}
	s.state = Success
	s.flights = flights
	s.updatedAt = s.now()
}

// Fail records the error line and leaves the result list untouched.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Searching {
		return
	}
	s.state = Failure
	s.errMsg = Describe(err)
	s.updatedAt = s.now()
}

// Submit runs one search through the session. The session always leaves
// Searching before Submit returns, including when the searcher panics.
func (s *Session) Submit(ctx context.Context, searcher Searcher, criteria models.SearchCriteria) error {
	if err := s.Begin(criteria); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			s.Fail(fmt.Errorf("search panicked: %v", r))
			panic(r)
		}
	}()

	res, err := searcher.Search(ctx, criteria)
	if err != nil {
		s.Fail(err)
		return err
	}
	s.Complete(res.Flights)
	return nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:     s.state,
		Flights:   append([]models.FlightSummary(nil), s.flights...),
		Error:     s.errMsg,
		UpdatedAt: s.updatedAt,
	}
	if snap.Flights == nil {
		snap.Flights = []models.FlightSummary{}
	}
	if s.criteria != nil {
		c := *s.criteria
		snap.Criteria = &c
	}
	return snap
}

// Restore loads a persisted snapshot. A snapshot taken mid-search comes back
// as Idle because its request no longer exists.
func (s *Session) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = snap.State
	if s.state == Searching {
		s.state = Idle
	}
	s.flights = snap.Flights
	if s.flights == nil {
		s.flights = []models.FlightSummary{}
	}
	s.errMsg = snap.Error
	s.criteria = snap.Criteria
	s.updatedAt = snap.UpdatedAt
}
