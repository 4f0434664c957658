package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeGii/vomm-sub000/internal/storage"
	"github.com/MikeGii/vomm-sub000/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe the local save (player progress and history)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" this deletes all progress; rerun with --yes to confirm"))
				return nil
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.players.Delete(ctx, storage.MainPlayerKey); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Good.Render(ui.IconCheck+" save wiped"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the wipe")
	return cmd
}
