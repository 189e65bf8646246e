package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/etapi-go/etapi.go/contrib/etapictl"
)

var (
	loginPassword string
	loginSave     bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange a password for an ETAPI token",
	Long: `Log in with the server password and print the issued token.
The password is read from --password, ETAPI_PASSWORD, or the first line of stdin.
With --save the token is written to the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			password = os.Getenv("ETAPI_PASSWORD")
		}
		if password == "" {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		if err := app.Login(cmd.Context(), password); err != nil {
			return err
		}
		if !loginSave {
			return nil
		}

		path := flags.ConfigPath
		if path == "" {
			var err error
			if path, err = etapictl.DefaultConfigPath(); err != nil {
				return err
			}
		}
		return app.SaveToken(path)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Server password")
	loginCmd.Flags().BoolVar(&loginSave, "save", false, "Store the token in the config file")
}
