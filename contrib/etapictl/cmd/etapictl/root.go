package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	etapi "github.com/etapi-go/etapi.go"
	"github.com/etapi-go/etapi.go/contrib/etapictl"
)

var (
	flags      etapictl.Flags
	verbose    bool
	timeout    time.Duration
	jsonOutput bool

	app *etapictl.App
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "etapictl",
	Short: "Command-line client for a note server's ETAPI",
	Long: `etapictl talks to a note server over its ETAPI REST interface.

Settings are resolved from flags, then ETAPI_URL and ETAPI_TOKEN, then the
YAML config file, then built-in defaults.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("verbose") {
			flags.Verbose = &verbose
		}
		if cmd.Flags().Changed("timeout") {
			flags.Timeout = &timeout
		}

		cfg, err := etapictl.Load(flags, os.Getenv)
		if err != nil {
			return err
		}
		app, err = etapictl.NewApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		app.JSON = jsonOutput
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		return app.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

// describe adds a hint for the transport failure kinds.
func describe(err error) string {
	switch {
	case errors.Is(err, etapi.ErrWrongCredentials):
		return fmt.Sprintf("Error: %v (the server rejected the request; check the token or the note id)", err)
	case errors.Is(err, etapi.ErrUnreachableServer):
		return fmt.Sprintf("Error: %v (is the server running at the configured url?)", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.URL, "url", "", "Server base URL (env ETAPI_URL)")
	pf.StringVar(&flags.Token, "token", "", "ETAPI token (env ETAPI_TOKEN)")
	pf.StringVar(&flags.ConfigPath, "config", "", "Config file (default $XDG_CONFIG_HOME/etapictl/config.yaml)")
	pf.StringVar(&flags.SearchVariant, "search-variant", "", `Search encoding, "query" or "body"`)
	pf.DurationVar(&timeout, "timeout", 0, "Per-request timeout")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	pf.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}
