package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcd "github.com/llehouerou/go-mcd"
	"github.com/llehouerou/go-mcd/config"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// app holds the persistent flags and what the commands share.
type app struct {
	profile    string
	configPath string
	endpoint   string
	output     string
	verbose    bool

	out    io.Writer
	in     io.Reader
	logger *zap.Logger

	// clientOptions are appended to the options built from the flags.
	clientOptions []mcd.Option
}

func newApp(out io.Writer) *app {
	return &app{out: out, in: os.Stdin, logger: zap.NewNop()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "mcd",
		Short: "mcd is a command line client for the Monte Carlo data observability API",
		Long: `mcd queries and manages tables, incidents, monitors and circuit breakers
through the Monte Carlo GraphQL API.

Credentials are read from flags, the MCD_DEFAULT_API_ID and
MCD_DEFAULT_API_TOKEN environment variables, or ~/.mcd/profiles.ini.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.profile, "profile", "", "profile of profiles.ini to use (default $"+config.EnvProfile+" or \"default\")")
	flags.StringVar(&a.configPath, "config-path", "", "directory holding profiles.ini (default $"+config.EnvConfigPath+" or ~/.mcd)")
	flags.StringVar(&a.endpoint, "endpoint", "", "GraphQL endpoint URL")
	flags.StringVarP(&a.output, "output", "o", outputJSON, "output format: json or yaml")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log requests and attach bodies to errors")

	root.AddCommand(
		newWhoamiCmd(a),
		newTablesCmd(a),
		newIncidentsCmd(a),
		newMonitorsCmd(a),
		newQueryCmd(a),
		newSchemaCmd(a),
		newCircuitBreakerCmd(a),
	)
	return root
}

func (a *app) setup() error {
	switch a.output {
	case outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q, want %s or %s", a.output, outputJSON, outputYAML)
	}
	if a.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		a.logger = logger
	}
	return nil
}

// client builds an API client from the persistent flags.
func (a *app) client() (*mcd.Client, error) {
	opts := []mcd.Option{
		mcd.WithProfile(a.profile),
		mcd.WithConfigPath(a.configPath),
		mcd.WithEndpoint(a.endpoint),
		mcd.WithLogger(a.logger),
		mcd.WithUserAgent("mcd-cli"),
	}
	if a.verbose {
		opts = append(opts, mcd.WithDebug(true))
	}
	return mcd.NewClient(append(opts, a.clientOptions...)...)
}
