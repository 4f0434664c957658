package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeGii/vomm-sub000/internal/engine"
	"github.com/MikeGii/vomm-sub000/internal/storage"
	"github.com/MikeGii/vomm-sub000/internal/ui"
)

func newTrainCmd() *cobra.Command {
	var times int

	cmd := &cobra.Command{
		Use:   "train <category> <activity|recipe>",
		Short: "Spend a training click (sports activity or crafting recipe)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("category and activity/recipe are required")
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
			return runTraining(ctx, a, cmd.OutOrStdout(), category, args[1], times)
		},
	}

	cmd.Flags().IntVarP(&times, "times", "n", 1, "Train once, or 5 for the bulk variant")
	return cmd
}

func runTraining(ctx context.Context, a *app, out io.Writer, category engine.Category, actionID string, times int) error {
	switch times {
	case 1:
		res, err := a.svc.PerformTraining(ctx, storage.MainPlayerKey, category, actionID)
		if err != nil {
			return err
		}
		printTrainingResult(out, res)
		return nil
	case engine.BulkTrainingClicks:
		bulk := a.svc.PerformTraining5x(ctx, storage.MainPlayerKey, category, actionID)
		for _, res := range bulk.Completed {
			printTrainingResult(out, res)
		}
		if bulk.Err != nil {
			fmt.Fprintf(out, "%s stopped after %d/%d clicks\n",
				ui.Warn.Render(ui.IconWarn), len(bulk.Completed), engine.BulkTrainingClicks)
			return bulk.Err
		}
		return nil
	default:
		return fmt.Errorf("--times must be 1 or %d", engine.BulkTrainingClicks)
	}
}

func printTrainingResult(out io.Writer, res *engine.TrainingResult) {
	var gains []string
	for skill, xp := range res.XPGained {
		g := fmt.Sprintf("+%d %s", xp, skill)
		if res.LevelsUp[skill] > 0 {
			g += " " + ui.BadgeLevelUp
		}
		gains = append(gains, g)
	}
	sort.Strings(gains)

	fmt.Fprintf(out, "%s %s %s\n",
		ui.Good.Render(ui.CategoryIcon(string(res.Category))+" Trained"),
		ui.Muted.Render(res.ActionID),
		strings.Join(gains, ", "))

	if res.Craft != nil {
		if res.Craft.GateRolled && !res.Craft.GatePassed {
			fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Craft failed, materials spent, nothing produced"))
		} else {
			for _, line := range res.Craft.Produced {
				text := fmt.Sprintf("%s Produced %d× %s", ui.IconBox, line.Quantity, line.BaseID)
				if res.Craft.Multiplier > 1 {
					text += fmt.Sprintf(" (kitchen yield ×%d)", res.Craft.Multiplier)
				}
				fmt.Fprintln(out, ui.Good.Render(text))
			}
		}
	}
	if res.Reputation > 0 {
		fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("%s +%d reputation", ui.IconBadge, res.Reputation)))
	}
	fmt.Fprintf(out, "%s\n", ui.LabelValue("Clicks left", res.RemainingClicks))
}
