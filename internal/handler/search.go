package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/providers"
	"github.com/dharmasatrya/flightfinder/internal/session"
	"github.com/dharmasatrya/flightfinder/internal/store"
)

const (
	SessionCookie = "flightfinder_session"
	IndexTemplate = "index.html"
)

type SearchHandler struct {
	searcher session.Searcher
	registry *store.Registry
	logger   *slog.Logger
}

func NewSearchHandler(searcher session.Searcher, registry *store.Registry, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{
		searcher: searcher,
		registry: registry,
		logger:   logger,
	}
}

// PageData is what the index template renders.
type PageData struct {
	Form       models.SearchCriteria
	Flights    []models.FlightSummary
	Error      string
	Searching  bool
	SortOrders []models.SortOrder
	Classes    []models.ClassOfService
}

// Page renders the search form with the caller's session state.
func (h *SearchHandler) Page(c echo.Context) error {
	ctx := c.Request().Context()
	sess := h.registry.Get(ctx, h.sessionID(c))
	return h.renderPage(c, http.StatusOK, sess, "")
}

// Submit runs the form's search through the caller's session and redirects
// back to the page. A second submit while one is in flight gets 409.
func (h *SearchHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	id := h.sessionID(c)
	sess := h.registry.Get(ctx, id)

	criteria := models.NewSearchCriteria()
	if err := c.Bind(&criteria); err != nil {
		return h.renderPage(c, http.StatusBadRequest, sess, "Invalid form input.")
	}

	err := sess.Submit(ctx, h.searcher, criteria)
	if errors.Is(err, session.ErrSearchInFlight) {
		return h.renderPage(c, http.StatusConflict, sess, session.Describe(err))
	}

	if saveErr := h.registry.Save(ctx, id, sess); saveErr != nil {
		h.logger.Warn("failed to save session", "session", id, "error", saveErr)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Search is the JSON form of a single search. It does not touch any session.
func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	criteria := models.NewSearchCriteria()
	if err := c.Bind(&criteria); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	result, err := h.searcher.Search(ctx, criteria)
	if err != nil {
		return searchError(c, err)
	}

	flights := result.Flights
	if flights == nil {
		flights = []models.FlightSummary{}
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchCriteria: result.Criteria,
		Metadata: models.SearchMetadata{
			TotalResults: len(flights),
			Provider:     result.Provider,
			SearchTimeMs: time.Since(startTime).Milliseconds(),
		},
		Flights: flights,
	})
}

func searchError(c echo.Context, err error) error {
	var vErr models.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: vErr.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	code := "provider_error"
	if errors.Is(err, providers.ErrMissingField) {
		code = "unexpected_response"
	}
	return c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error:   code,
		Message: session.Describe(err),
		Code:    http.StatusBadGateway,
	})
}

func (h *SearchHandler) renderPage(c echo.Context, status int, sess *session.Session, notice string) error {
	snap := sess.Snapshot()

	form := models.NewSearchCriteria()
	if snap.Criteria != nil {
		form = *snap.Criteria
	}

	errMsg := snap.Error
	if notice != "" {
		errMsg = notice
	}

	return c.Render(status, IndexTemplate, PageData{
		Form:       form,
		Flights:    snap.Flights,
		Error:      errMsg,
		Searching:  snap.State == session.Searching,
		SortOrders: []models.SortOrder{models.SortByPrice, models.SortByDuration},
		Classes:    []models.ClassOfService{models.ClassEconomy, models.ClassBusiness},
	})
}

// sessionID returns the caller's session id, issuing a new cookie when the
// request has none or carries a malformed one.
func (h *SearchHandler) sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
