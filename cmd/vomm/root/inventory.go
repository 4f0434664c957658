package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeGii/vomm-sub000/internal/storage"
	"github.com/MikeGii/vomm-sub000/internal/ui"
)

func newInventoryCmd() *cobra.Command {
	var showLots bool

	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "List owned items grouped by base item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := a.svc.Status(ctx, storage.MainPlayerKey)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconBox, "Inventory"))
			if len(st.Items) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
				return nil
			}
			for _, item := range st.Items {
				fmt.Fprintf(out, "- %s ×%d %s\n",
					ui.Key.Render(item.Name), item.Total,
					ui.Muted.Render(fmt.Sprintf("(%s, %d lot(s))", item.Category, len(item.Lots))))
				if showLots {
					for _, lot := range item.Lots {
						mark := ""
						if lot.Equipped {
							mark = " " + ui.Gold.Render("equipped")
						}
						fmt.Fprintf(out, "    %s ×%d%s\n", ui.Dim.Render(lot.ID), lot.Quantity, mark)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showLots, "lots", "l", false, "Show individual lots with their ids")
	return cmd
}
