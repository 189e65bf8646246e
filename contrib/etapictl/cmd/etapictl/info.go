package main

import "github.com/spf13/cobra"

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the server version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Info(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
