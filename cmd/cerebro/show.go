package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/five82/cerebro/internal/app"
	"github.com/five82/cerebro/internal/catalog"
	"github.com/five82/cerebro/internal/marvel"
)

const descriptionWidth = 80

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid character id %q", args[0])
			}
			return runShow(cmd, id)
		},
	}
}

func runShow(cmd *cobra.Command, id int) error {
	ctx := cmd.Context()

	return withSession(func(s *app.Session) error {
		c, err := app.LookupOnce(ctx, s.Client, id)
		if errors.Is(err, marvel.ErrNotFound) {
			return fmt.Errorf("character %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("loading character %d: %w", id, err)
		}

		printCharacter(cmd.OutOrStdout(), *c)
		printAttribution(cmd.OutOrStdout(), s.Store.Snapshot().Attribution)
		return nil
	})
}

func printCharacter(out io.Writer, c marvel.Character) {
	summary := catalog.Summarize(c)

	fmt.Fprintf(out, "%s (#%d)\n", summary.Name, summary.ID)
	if summary.Codename != "" {
		fmt.Fprintf(out, "aka %s\n", summary.Codename)
	}
	fmt.Fprintln(out)

	if desc := strings.TrimSpace(c.Description); desc != "" {
		fmt.Fprintln(out, wordwrap.String(desc, descriptionWidth))
	} else {
		fmt.Fprintln(out, "No description available.")
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Comics\t%d\n", c.Comics.Available)
	fmt.Fprintf(w, "Series\t%d\n", c.Series.Available)
	fmt.Fprintf(w, "Stories\t%d\n", c.Stories.Available)
	fmt.Fprintf(w, "Events\t%d\n", c.Events.Available)
	fmt.Fprintf(w, "Activity\t%s\n", catalog.ClassifyActivity(summary.Comics).Label())
	if tags := catalog.SeriesTags(c.Series.Names()); len(tags) > 0 {
		fmt.Fprintf(w, "Series tags\t%s\n", strings.Join(tags, ", "))
	}
	if modified := c.ParsedModified(); !modified.IsZero() {
		fmt.Fprintf(w, "Modified\t%s\n", modified.Format("2006-01-02"))
	}
	if summary.ThumbnailURL != "" {
		fmt.Fprintf(w, "Image\t%s\n", summary.ThumbnailURL)
	}
	if url := c.DetailURL(); url != "" {
		fmt.Fprintf(w, "Link\t%s\n", url)
	}
	w.Flush()
}
