package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/cerebro/internal/app"
	"github.com/five82/cerebro/internal/catalog"
)

func newSearchCmd() *cobra.Command {
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "search <prefix>",
		Short: "Search characters by name prefix",
		Long:  "Print the first characters whose name starts with prefix, sorted by name or comic count.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], sortFlag)
		},
	}

	cmd.Flags().StringVarP(&sortFlag, "sort", "s", "", "sort order: "+sortKeyList()+" (default from prefs)")

	return cmd
}

func runSearch(cmd *cobra.Command, prefix, sortFlag string) error {
	ctx := cmd.Context()

	return withSession(func(s *app.Session) error {
		sort := s.Prefs.Sort
		if sortFlag != "" {
			key, ok := catalog.ParseSortKey(sortFlag)
			if !ok {
				return fmt.Errorf("invalid sort %q (want one of %s)", sortFlag, sortKeyList())
			}
			sort = key
		}

		items, err := app.SearchOnce(ctx, s.Client, prefix, sort)
		if err != nil {
			return fmt.Errorf("searching characters: %w", err)
		}

		printSearchResults(cmd.OutOrStdout(), items)
		printAttribution(cmd.OutOrStdout(), s.Store.Snapshot().Attribution)
		return nil
	})
}

func printSearchResults(out io.Writer, items []catalog.CharacterSummary) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No characters found.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOMICS\tEVENTS")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", item.ID, item.Name, item.Comics, item.Events)
	}
	w.Flush()
}

func printAttribution(out io.Writer, attribution string) {
	if attribution != "" {
		fmt.Fprintf(out, "\n%s\n", attribution)
	}
}

func sortKeyList() string {
	keys := make([]string, 0, len(catalog.SortKeys))
	for _, k := range catalog.SortKeys {
		keys = append(keys, string(k))
	}
	return strings.Join(keys, ", ")
}
