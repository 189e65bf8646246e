package main

import (
	"github.com/spf13/cobra"

	"github.com/etapi-go/etapi.go/contrib/etapictl"
)

var (
	searchArgs  etapictl.SearchArgs
	searchLimit uint
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchArgs.Query = args[0]
		if cmd.Flags().Changed("limit") {
			searchArgs.Limit = &searchLimit
		}
		return app.Search(cmd.Context(), searchArgs)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	f := searchCmd.Flags()
	f.BoolVar(&searchArgs.Fast, "fast", false, "Skip content search")
	f.BoolVar(&searchArgs.Archived, "archived", false, "Include archived notes")
	f.StringVar(&searchArgs.Ancestor, "ancestor", "", "Only search below this note")
	f.StringVar(&searchArgs.Depth, "depth", "", "Ancestor depth, e.g. lt3, eq1, gt2")
	f.StringVar(&searchArgs.OrderBy, "order-by", "", "Field to order by")
	f.StringVar(&searchArgs.OrderDirection, "order", "", `Order direction, "asc" or "dec"`)
	f.UintVar(&searchLimit, "limit", 0, "Maximum number of results")
	f.BoolVar(&searchArgs.Debug, "debug", false, "Ask the server for debug info")
}
