package main

import "github.com/spf13/cobra"

var getCmd = &cobra.Command{
	Use:   "get [noteId]",
	Short: "Show a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Get(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
