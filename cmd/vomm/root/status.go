package root

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeGii/vomm-sub000/internal/engine"
	"github.com/MikeGii/vomm-sub000/internal/storage"
	"github.com/MikeGii/vomm-sub000/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show quotas, attributes and active timers",
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
			p := st.Player

			fmt.Fprintln(out, ui.Heading(ui.IconSpark, "Player Status"))
			flags := "idle"
			if p.Working {
				flags = "working"
			}
			if p.VIP {
				flags += ", VIP"
			}
			fmt.Fprintln(out, ui.LabelValue("Player", fmt.Sprintf("%s (%s)", p.ID, flags)))
			fmt.Fprintln(out, ui.LabelValue("Reputation", p.Reputation))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("⏳ Quotas"))
			for _, q := range st.Quotas {
				untilReset := time.Until(q.NextReset).Round(time.Minute)
				fmt.Fprintf(out, "- %s %-10s %s %s\n",
					ui.CategoryIcon(string(q.Category)), q.Category,
					ui.QuotaText(q.RemainingClicks, q.MaxClicks),
					ui.Muted.Render(fmt.Sprintf("(done %d, reset in %s)", q.TotalDone, untilReset)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Attributes"))
			for _, attr := range st.Attributes {
				tag := ""
				if attr.Physical {
					tag = ui.Muted.Render(" physical")
				}
				fmt.Fprintf(out, "- %-13s lvl %d (xp %d/%d)%s\n",
					attr.Skill, attr.Level, attr.Experience, attr.ExperienceForNextLevel, tag)
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("🕒 Timed tasks"))
			printTimedTask(out, "course", p.Course)
			printTimedTask(out, "work", p.Work)

			return nil
		},
	}

	return cmd
}

func printTimedTask(out io.Writer, name string, task *engine.ActiveTimedTask) {
	if task == nil {
		fmt.Fprintf(out, "- %-6s %s\n", name, ui.Muted.Render("none"))
		return
	}
	remaining := time.Until(task.EndsAt).Round(time.Second)
	note := ""
	if task.BoosterUsed {
		note = " " + ui.Muted.Render("(booster used)")
	}
	fmt.Fprintf(out, "- %-6s ends %s, %s left%s\n",
		name, task.EndsAt.Local().Format("15:04"), remaining, note)
}
