package main

import (
	"github.com/spf13/cobra"

	"github.com/etapi-go/etapi.go/contrib/etapictl"
)

var patchArgs etapictl.PatchArgs

var patchCmd = &cobra.Command{
	Use:   "patch [noteId]",
	Short: "Change a note's title, type or mime",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patchArgs.ID = args[0]
		return app.Patch(cmd.Context(), patchArgs)
	},
}

func init() {
	rootCmd.AddCommand(patchCmd)
	f := patchCmd.Flags()
	f.StringVar(&patchArgs.Title, "title", "", "New title")
	f.StringVar(&patchArgs.Type, "type", "", "New note type")
	f.StringVar(&patchArgs.Mime, "mime", "", "New MIME type")
}
