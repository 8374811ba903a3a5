package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dharmasatrya/flightfinder/internal/logging"
	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/render"
	"github.com/dharmasatrya/flightfinder/internal/session"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a single flight search and print the results",
	Long: `Run one one-way flight search and print every itinerary with its
purchase options. Prices are shown in INR.

Examples:
  # Cheapest flights from JFK to LAX
  flightfinder search --from JFK --to LAX

  # Shortest business-class flights on a given day, as JSON
  flightfinder search --from JFK --to LAX --date 2024-05-01 --sort duration --class business --json`,
	RunE: runSearch,
}

var (
	searchFrom   string
	searchTo     string
	searchDate   string
	searchSort   string
	searchClass  string
	searchAdults int
	searchJSON   bool
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchFrom, "from", "", "Source airport code (e.g. JFK)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "Destination airport code (e.g. LAX)")
	searchCmd.Flags().StringVar(&searchDate, "date", "", "Departure date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchSort, "sort", string(models.SortByPrice), "Sort order: PRICE or DURATION")
	searchCmd.Flags().StringVar(&searchClass, "class", string(models.ClassEconomy), "Class of service: ECONOMY or BUSINESS")
	searchCmd.Flags().IntVar(&searchAdults, "adults", 1, "Number of adults")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print the results as JSON")
}

func searchCriteria() models.SearchCriteria {
	return models.SearchCriteria{
		SourceAirportCode:      searchFrom,
		DestinationAirportCode: searchTo,
		Date:                   searchDate,
		SortOrder:              models.SortOrder(searchSort),
		ClassOfService:         models.ClassOfService(searchClass),
		NumAdults:              searchAdults,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	criteria := searchCriteria()

	if searchJSON {
		start := time.Now()
		result, err := svc.Search(ctx, criteria)
		if err != nil {
			return fmt.Errorf("search failed: %s", session.Describe(err))
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(models.SearchResponse{
			SearchCriteria: result.Criteria,
			Metadata: models.SearchMetadata{
				TotalResults: len(result.Flights),
				Provider:     result.Provider,
				SearchTimeMs: time.Since(start).Milliseconds(),
			},
			Flights: result.Flights,
		})
	}

	sess := session.New()
	if err := sess.Submit(ctx, svc, criteria); err != nil {
		return fmt.Errorf("search failed: %s", session.Describe(err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, render.Results(sess.Snapshot().Flights, render.NewStyles(lipgloss.NewRenderer(out))))
	return nil
}
