// Azimut: personal journal for a nine-block self-observation program.
//
// The same binary records and browses the journal from the command line
// and serves it to AI assistants over MCP.
//
// Usage:
//
//	azimut --name Ana --email ana@example.com --pin 1234 add --block 3 --label Pecho --value nudo
//	azimut --name Ana --email ana@example.com --pin 1234 insights
//	azimut serve    # Start MCP server (stdio transport)
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HendryAvila/azimut/internal/config"
	"github.com/HendryAvila/azimut/internal/logging"
	"github.com/HendryAvila/azimut/internal/metrics"
	azserver "github.com/HendryAvila/azimut/internal/server"
	"github.com/HendryAvila/azimut/internal/session"
)

func main() {
	// A missing .env is normal; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	root       string
	backend    string
	logLevel   string

	name, email, pin string

	logOut  io.Writer
	cfg     config.Config
	log     *logrus.Logger
	metrics *metrics.Metrics
	svc     *session.Service
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	a := &app{logOut: logOut}

	rootCmd := &cobra.Command{
		Use:          "azimut",
		Short:        "Personal journal with streaks, patterns and recommendations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.azimut/config.yaml)")
	flags.StringVar(&a.root, "root", "", "storage root directory (overrides config)")
	flags.StringVar(&a.backend, "backend", "", "storage backend: json or sqlite (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (overrides config)")
	flags.StringVar(&a.name, "name", "", "your name")
	flags.StringVar(&a.email, "email", "", "your email")
	flags.StringVar(&a.pin, "pin", "", "your PIN")

	rootCmd.AddCommand(addCmd(a))
	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(insightsCmd(a))
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(clearCmd(a))
	rootCmd.AddCommand(profileCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(configCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the
// session service.
func (a *app) setup() error {
	cfg, err := config.Load(a.resolvedConfigPath())
	if err != nil {
		return err
	}
	if a.root != "" {
		cfg.StorageRoot = a.root
	}
	if a.backend != "" {
		cfg.Backend = a.backend
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = logging.New(cfg.LogLevel, cfg.LogFormat, a.logOut)
	if err != nil {
		return err
	}
	a.metrics = metrics.New()

	a.svc, err = azserver.NewService(cfg, a.log, a.metrics)
	return err
}

// session opens the journal selected by --name, --email and --pin.
func (a *app) session(w io.Writer) *session.Session {
	s := a.svc.Open(a.name, a.email, a.pin)
	if !s.Persistent() {
		fmt.Fprintln(w, "note: --name, --email and --pin not all set; nothing will be saved")
	}
	return s
}

func (a *app) resolvedConfigPath() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.DefaultPath()
}
