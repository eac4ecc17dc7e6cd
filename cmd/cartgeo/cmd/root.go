package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/reloadkit/cartgeo/internal/config"
	"github.com/spf13/cobra"
)

// newRootCommand builds the command tree around a.
func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cartgeo",
		Short: "Cartridge and bullet geometry engine",
		Long: `Generate cartridge and bullet profiles from partial dimension records,
compute chamber clearances, lay out a cartridge in a barrel and build
revolution meshes. Results are written to stdout as JSON.

Examples:
  cartgeo cartridge 308win.yaml                 # Case profile with dimensions
  cartgeo chamber 308win.yaml rifle.yaml        # Chamber clearances and outline
  cartgeo mesh --half 308win.yaml               # Cutaway mesh buffers
  cartgeo catalog seed catalog.yaml             # Store records
  cartgeo catalog render                        # Render every stored record`,
		Version:       "0.3.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configDir, "config", "c", ".",
		fmt.Sprintf("directory containing %s", config.FileName))

	rootCmd.AddCommand(
		newCartridgeCmd(a),
		newBulletCmd(a),
		newChamberCmd(a),
		newAssemblyCmd(a),
		newMeshCmd(a),
		newCatalogCmd(a),
	)
	return rootCmd
}

// Run executes args against a fresh command tree and writes results to out.
// Logging sinks are released before it returns.
func Run(ctx context.Context, args []string, out io.Writer) error {
	a := newApp()
	rootCmd := newRootCommand(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)

	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

// Execute runs the root command
func Execute() {
	if err := Run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
