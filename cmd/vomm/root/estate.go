package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeGii/vomm-sub000/internal/engine"
	"github.com/MikeGii/vomm-sub000/internal/storage"
	"github.com/MikeGii/vomm-sub000/internal/ui"
)

// estate edits the facility columns the kitchen and workshop lookups read.
// Only columns whose flags were given are written; the rest keep their
// persisted values.
func newEstateCmd() *cobra.Command {
	var kitchen string
	var device bool
	var rate int
	var vip bool
	var working bool

	cmd := &cobra.Command{
		Use:   "estate",
		Short: "Set kitchen, workshop and player flags",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.New("estate takes flags only")
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

			// Row must exist before the UPDATEs.
			if _, err := a.players.GetOrCreate(ctx, storage.MainPlayerKey); err != nil {
				return err
			}

			var kitchenPtr *engine.KitchenSize
			if cmd.Flags().Changed("kitchen") {
				size := engine.KitchenSize(strings.ToLower(kitchen))
				if !size.IsValid() {
					return fmt.Errorf("kitchen must be none|small|medium|large, got %q", kitchen)
				}
				kitchenPtr = &size
			}
			var devicePtr *bool
			if cmd.Flags().Changed("device") {
				devicePtr = &device
			}
			var ratePtr *int
			if cmd.Flags().Changed("rate") {
				if rate < 0 || rate > 100 {
					return fmt.Errorf("rate must be in [0,100], got %d", rate)
				}
				ratePtr = &rate
			}
			if kitchenPtr != nil || devicePtr != nil || ratePtr != nil {
				if err := a.players.SetEstate(ctx, storage.MainPlayerKey, kitchenPtr, devicePtr, ratePtr); err != nil {
					return err
				}
			}

			var vipPtr, workingPtr *bool
			if cmd.Flags().Changed("vip") {
				vipPtr = &vip
			}
			if cmd.Flags().Changed("working") {
				workingPtr = &working
			}
			if vipPtr != nil || workingPtr != nil {
				if err := a.players.SetFlags(ctx, storage.MainPlayerKey, vipPtr, workingPtr); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconCheck+" Estate updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&kitchen, "kitchen", "", "Kitchen size (none|small|medium|large)")
	cmd.Flags().BoolVar(&device, "device", false, "Workshop device equipped")
	cmd.Flags().IntVar(&rate, "rate", 0, "Workshop success rate (0-100)")
	cmd.Flags().BoolVar(&vip, "vip", false, "VIP status")
	cmd.Flags().BoolVar(&working, "working", false, "Working status")
	return cmd
}
