package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeGii/vomm-sub000/internal/storage"
	"github.com/MikeGii/vomm-sub000/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent training and booster activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := a.history.Recent(ctx, storage.MainPlayerKey, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconClock, "Recent activity"))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing yet)"))
				return nil
			}
			for _, e := range entries {
				tag := ""
				if e.ItemTag.Valid {
					tag = " " + ui.Key.Render(e.ItemTag.String)
				}
				fmt.Fprintf(out, "- %s %s ×%d%s\n",
					ui.Muted.Render(e.CreatedAt.Local().Format("Jan 02 15:04")), e.Kind, e.Amount, tag)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Entries to show")
	return cmd
}
