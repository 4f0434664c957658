package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeGii/vomm-sub000/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "vomm",
	Short:         "Academy trainer: hourly training clicks, crafting and boosters",
	Long:          "vomm is a local-first trainer: spend hourly training clicks on sports,\nkitchen-lab and handicraft, craft from materials, and use boosters.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newTrainCmd(),
		newCraftCmd(),
		newBoostCmd(),
		newStatusCmd(),
		newInventoryCmd(),
		newRecipesCmd(),
		newHistoryCmd(),
		newEstateCmd(),
		newBoardCmd(),
		newResetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
