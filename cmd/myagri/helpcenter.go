package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/myagri/pkg/catalog"
	"github.com/aretw0/myagri/pkg/core"
	"github.com/aretw0/myagri/pkg/query"
)

var (
	helpCategory string
	helpJSON     bool
)

var helpCenterCmd = &cobra.Command{
	Use:     "helpcenter",
	Aliases: []string{"aide"},
	Short:   "Browse the FAQ and help resources",
}

var helpSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the FAQ and the resources",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		faq, resources := catalog.SearchHelp(strings.Join(args, " "), core.Category(helpCategory))

		if helpJSON {
			writeJSON(cmd.OutOrStdout(), map[string][]core.Record{
				"faq":       faq,
				"resources": resources,
			})
			return
		}

		out := cmd.OutOrStdout()
		if len(faq)+len(resources) == 0 {
			fmt.Fprintln(out, "Aucun résultat trouvé")
			return
		}
		for _, r := range faq {
			fmt.Fprintf(out, "[%s] %s\n    %s\n", r.Category, r.Title, r.Body)
		}
		if len(faq) > 0 && len(resources) > 0 {
			fmt.Fprintln(out)
		}
		for _, r := range resources {
			fmt.Fprintf(out, "(%s) %s - %s\n", r.Category, r.Title, r.Body)
		}
	},
}

func init() {
	rootCmd.AddCommand(helpCenterCmd)
	helpCenterCmd.AddCommand(helpSearchCmd)

	helpSearchCmd.Flags().StringVar(&helpCategory, "category", query.All, "Restrict the FAQ to one category")
	helpSearchCmd.Flags().BoolVar(&helpJSON, "json", false, "Output in JSON format")
}
