package main

import "github.com/spf13/cobra"

var deleteCmd = &cobra.Command{
	Use:   "delete [noteId]",
	Short: "Delete a note and its subtree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
