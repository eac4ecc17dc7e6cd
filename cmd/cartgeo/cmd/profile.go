package cmd

import (
	"github.com/reloadkit/cartgeo/internal/engine"
	"github.com/reloadkit/cartgeo/internal/records"
	"github.com/reloadkit/cartgeo/pkg/core"
	"github.com/spf13/cobra"
)

func newCartridgeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cartridge <dimensions-file>",
		Short: "Generate a cartridge case profile",
		Long: `Read one set of cartridge dimensions (YAML, or JSON for .json files),
fill missing fields with estimates and print the profile, its SVG path and
the placed dimension annotations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := records.ReadCartridge(args[0])
			if err != nil {
				return err
			}
			dr, err := a.engine.Cartridge(cmd.Context(), d)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dr)
		},
	}
}

func newBulletCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bullet <dimensions-file>",
		Short: "Generate a bullet profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := records.ReadBullet(args[0])
			if err != nil {
				return err
			}
			dr, err := a.engine.Bullet(cmd.Context(), d)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dr)
		},
	}
}

func newChamberCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chamber <cartridge-file> [rifle-file]",
		Short: "Compute chamber clearances around a cartridge",
		Long: `Compute headspace, neck and body clearance, freebore and rifling
engagement. Figures missing from the rifle file (or all of them, without one)
are replaced by defaults and listed as estimated.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := records.ReadCartridge(args[0])
			if err != nil {
				return err
			}
			var rifle *core.RifleChamber
			if len(args) == 2 {
				rc, err := records.ReadRifle(args[1])
				if err != nil {
					return err
				}
				rifle = &rc
			}
			res, err := a.engine.Chamber(cmd.Context(), d, rifle)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newAssemblyCmd(a *app) *cobra.Command {
	var barrel engine.Barrel

	cmd := &cobra.Command{
		Use:   "assembly <cartridge-file> <bullet-file> [rifle-file]",
		Short: "Lay out a loaded cartridge in a barrel",
		Long: `Place the cartridge at the bolt face, seat the bullet and rescale
barrel node positions into the visible window. The pressure ratio is
classified with the configured stress thresholds; without --max the
stress zone is "unknown".

Barrel length and outer diameter default to the rifle record when one is
given. --barrel is required otherwise.

Examples:
  cartgeo assembly --barrel 610 --nodes 180,420 --peak 58000 --max 62000 308win.yaml 168smk.yaml
  cartgeo assembly --nodes 180,420 308win.yaml 168smk.yaml tikka.yaml`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := records.ReadCartridge(args[0])
			if err != nil {
				return err
			}
			b, err := records.ReadBullet(args[1])
			if err != nil {
				return err
			}
			var rifle *core.RifleChamber
			if len(args) == 3 {
				rc, err := records.ReadRifle(args[2])
				if err != nil {
					return err
				}
				rifle = &rc
			}
			l, err := a.engine.Load(cmd.Context(), c, b, barrel, rifle)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), l)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&barrel.LengthMM, "barrel", 0, "barrel length from bolt face to muzzle, mm (default from the rifle file)")
	f.Float64Var(&barrel.VisibleLengthMM, "visible", 0, "visible barrel window, mm (0 shows the whole barrel)")
	f.Float64Var(&barrel.SeatingDepthMM, "seating", 0, "seating depth, mm (0 seats one bullet diameter deep)")
	f.Float64Var(&barrel.OuterDiameterMM, "outer", 0, "barrel outer diameter, mm (default from the rifle file)")
	f.Float64SliceVar(&barrel.NodesMM, "nodes", nil, "barrel node positions from the bolt face, mm")
	f.Float64Var(&barrel.PeakPressure, "peak", 0, "measured peak pressure")
	f.Float64Var(&barrel.MaxPressure, "max", 0, "maximum average pressure, same unit as --peak")
	return cmd
}
