package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeGii/vomm-sub000/internal/engine"
	"github.com/MikeGii/vomm-sub000/internal/storage"
	"github.com/MikeGii/vomm-sub000/internal/ui"
)

func newBoostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boost",
		Short: "Use a consumable booster",
	}
	cmd.AddCommand(newBoostQuotaCmd(), newBoostTimerCmd())
	return cmd
}

func newBoostQuotaCmd() *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "quota <category> <lot>",
		Short: "Refill training clicks from a quota booster lot",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("category and lot id are required")
			}
			if _, ok := engine.ParseCategory(args[0]); !ok {
				return fmt.Errorf("unknown category %q (sports|kitchen|handicraft)", args[0])
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

			category, _ := engine.ParseCategory(args[0])
			res, err := a.svc.ConsumeQuotaBooster(ctx, storage.MainPlayerKey, category, args[1], qty)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s quota +%d → %d clicks (used %d unit(s))\n",
				ui.Good.Render(ui.IconBolt+" Boosted"), res.Category, res.ClicksRestored, res.RemainingClicks, res.UnitsConsumed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&qty, "qty", "q", 1, "Units to consume (the full amount is spent even past the cap)")
	return cmd
}

func newBoostTimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer <course|work> <lot>",
		Short: "Compress the remaining time of an active course or work shift",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("target and lot id are required")
			}
			if _, ok := engine.ParseTarget(args[0]); !ok {
				return fmt.Errorf("target must be course or work, got %q", args[0])
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

			target, _ := engine.ParseTarget(args[0])
			res, err := a.svc.CompressTimer(ctx, storage.MainPlayerKey, target, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s now ends at %s (%s sooner)\n",
				ui.Good.Render(ui.IconClock+" Compressed"), res.Target,
				res.NewEnd.Local().Format(time.Kitchen), res.Reduction.Round(time.Second))
			return nil
		},
	}

	return cmd
}
