package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/etapi-go/etapi.go/contrib/etapictl"
)

var (
	createArgs     etapictl.CreateArgs
	createPosition int
	createFromFile string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a note",
	Long: `Create a note under --parent. The content comes from --content, or from
--file ("-" reads stdin).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		createArgs.Title = args[0]
		if cmd.Flags().Changed("position") {
			createArgs.Position = &createPosition
		}

		if createFromFile != "" {
			var r io.Reader = cmd.InOrStdin()
			if createFromFile != "-" {
				f, err := os.Open(createFromFile)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return err
			}
			createArgs.Content = string(data)
		}

		return app.Create(cmd.Context(), createArgs)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	f := createCmd.Flags()
	f.StringVar(&createArgs.Parent, "parent", "root", "Parent note id")
	f.StringVar(&createArgs.Type, "type", "text", "Note type")
	f.StringVar(&createArgs.Mime, "mime", "", "MIME type, required for code, file and image notes")
	f.StringVar(&createArgs.Content, "content", "", "Note content")
	f.StringVar(&createFromFile, "file", "", "Read content from a file")
	f.StringVar(&createArgs.Prefix, "prefix", "", "Branch prefix")
	f.IntVar(&createPosition, "position", 0, "Position among the parent's children")
	f.StringVar(&createArgs.NoteID, "id", "", "Note id to use instead of a server-generated one")
}
