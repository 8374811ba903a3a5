package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dharmasatrya/flightfinder/internal/logging"
	"github.com/dharmasatrya/flightfinder/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive search form",
	Long: `Open the interactive search form in the terminal. Logs go to
logging.file (default $HOME/.config/flightfinder/tui.log) so they do not
draw over the form.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("starting tui")
	return tui.Run(cmd.Context(), svc)
}
