package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dharmasatrya/flightfinder/internal/config"
	"github.com/dharmasatrya/flightfinder/internal/providers"
	"github.com/dharmasatrya/flightfinder/internal/search"
)

var rootCmd = &cobra.Command{
	Use:   "flightfinder",
	Short: "Search one-way flights from the terminal",
	Long: `flightfinder searches one-way flights through the TripAdvisor flights
API on RapidAPI and prints each itinerary with its purchase options.

The API key is read from FLIGHTFINDER_API_KEY or RAPIDAPI_KEY, a .env file,
or api.key in the config file.`,
	SilenceUsage: true,
}

var cfgFile string

// ExecuteContext runs the root command with ctx
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.config/flightfinder/config.yaml)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.New(), cfgFile)
}

func newService(cfg *config.Config, logger *slog.Logger) (*search.Service, error) {
	provider, err := providers.NewTripAdvisorProvider(providers.TripAdvisorConfig{
		BaseURL:       cfg.API.BaseURL,
		Host:          cfg.API.Host,
		APIKey:        cfg.API.Key,
		Timeout:       cfg.API.Timeout,
		ForwardAdults: cfg.API.ForwardAdults,
	})
	if err != nil {
		return nil, err
	}
	return search.NewService(provider, logger), nil
}
