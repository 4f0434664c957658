package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeGii/vomm-sub000/internal/engine"
)

// craft is shorthand for train with the category taken from the recipe.
func newCraftCmd() *cobra.Command {
	var times int

	cmd := &cobra.Command{
		Use:   "craft <recipe>",
		Short: "Craft a recipe (spends a kitchen or handicraft click)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("recipe id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			recipe, ok := a.svc.Catalog().Recipes[args[0]]
			if !ok {
				return fmt.Errorf("unknown recipe %q (see `vomm recipes`)", args[0])
			}
			return runTraining(ctx, a, cmd.OutOrStdout(), engine.Category(recipe.Category), recipe.ID, times)
		},
	}

	cmd.Flags().IntVarP(&times, "times", "n", 1, "Craft once, or 5 for the bulk variant")
	return cmd
}
