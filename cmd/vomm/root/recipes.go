package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeGii/vomm-sub000/internal/engine"
	"github.com/MikeGii/vomm-sub000/internal/storage"
	"github.com/MikeGii/vomm-sub000/internal/ui"
)

func newRecipesCmd() *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "List crafting recipes with readiness marks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var category engine.Category
			if categoryFlag != "" {
				parsed, ok := engine.ParseCategory(categoryFlag)
				if !ok || !parsed.IsCrafting() {
					return fmt.Errorf("category must be kitchen or handicraft, got %q", categoryFlag)
				}
				category = parsed
			}

			views, err := a.svc.Recipes(ctx, storage.MainPlayerKey, category)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconCraft, "Recipes"))
			for _, rv := range views {
				mark := ui.Good.Render(ui.IconCheck)
				var notes []string
				if !rv.LevelMet {
					mark = ui.Bad.Render(ui.IconLock)
					notes = append(notes, fmt.Sprintf("needs skill level %d", rv.Recipe.RequiredLevel))
				}
				if !rv.HasMaterials {
					if rv.LevelMet {
						mark = ui.Warn.Render(ui.IconWarn)
					}
					for _, d := range rv.Deficits {
						notes = append(notes, fmt.Sprintf("%s %d/%d", d.BaseID, d.Have, d.Needed))
					}
				}
				if rv.Recipe.RequiresDevice {
					notes = append(notes, "workshop device")
				}

				line := fmt.Sprintf("%s %s %s %s", mark, ui.Key.Render(rv.Recipe.ID),
					rv.Recipe.Name, ui.Muted.Render("["+rv.Recipe.Category+"]"))
				if len(notes) > 0 {
					line += " " + ui.Muted.Render("("+strings.Join(notes, ", ")+")")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "Filter by category (kitchen|handicraft)")
	return cmd
}
