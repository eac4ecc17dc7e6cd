package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/reloadkit/cartgeo/internal/config"
	"github.com/reloadkit/cartgeo/internal/records"
	"github.com/reloadkit/cartgeo/internal/storage"
	"github.com/reloadkit/cartgeo/internal/worker"
	"github.com/reloadkit/cartgeo/pkg/core"
	"github.com/spf13/cobra"
)

type seedOutput struct {
	Storage string `json:"storage"`
	Seeded  int    `json:"seeded"`
}

type renderOutput struct {
	worker.Result
	ExportedFile string `json:"exported_file,omitempty"`
}

func newCatalogCmd(a *app) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Store and batch-render named records",
	}
	catalogCmd.AddCommand(
		newCatalogSeedCmd(a),
		newCatalogRenderCmd(a),
		newCatalogSnapshotsCmd(a),
		newCatalogBackupCmd(a),
	)
	return catalogCmd
}

func newCatalogSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <records-file>",
		Short: "Save the records of a catalog file",
		Long: `Save every cartridge, bullet and rifle of a catalog file into the
configured storage. Records are matched by name, so seeding twice updates
them in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cat, err := records.LoadCatalog(args[0])
			if err != nil {
				return err
			}
			b, err := a.openBackend()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, b.Close()) }()

			storageType := config.GetStorageConfig().Type
			if storageType == config.StorageMemory {
				a.logger.Warn("Memory storage keeps seeded records for this invocation only; set storage.memory.seedFile to render them")
			}
			n, err := storage.Seed(b, cat)
			if err != nil {
				return err
			}
			a.logger.Info("Catalog seeded", "records", n, "storage", storageType)
			return writeJSON(cmd.OutOrStdout(), seedOutput{Storage: storageType, Seeded: n})
		},
	}
}

func newCatalogRenderCmd(a *app) *cobra.Command {
	var (
		workers int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render every stored cartridge and bullet",
		Long: `Render the stored catalog in parallel, save one snapshot per record
and print the run statistics with the snapshots. Invalid records are kept
as insufficient snapshots and counted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cc := config.GetCatalogConfig()
			if !cmd.Flags().Changed("workers") {
				workers = cc.Workers
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = cc.Timeout
			}

			b, err := a.openBackend()
			if err != nil {
				return err
			}
			sink, closeSink := a.statsSink(ctx)

			res, err := worker.NewManager(worker.Dependencies{
				Engine:  a.engine,
				Backend: b,
				Logger:  a.logger,
				Sink:    sink,
			}).Render(ctx, worker.Options{Workers: workers, Timeout: timeout})
			err = errors.Join(err, closeSink(), b.Close())
			if err != nil {
				return err
			}

			out := renderOutput{Result: res}
			if exp, ok := b.(storage.Exporter); ok {
				out.ExportedFile = exp.ExportedFilePath()
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&workers, "workers", "w", 0, "concurrent renders (default catalog.workers)")
	f.DurationVar(&timeout, "timeout", 0, "run deadline, 0 for none (default catalog.timeout)")
	return cmd
}

func newCatalogSnapshotsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots [run-id]",
		Short: "List stored snapshots, optionally of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			b, err := a.openBackend()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, b.Close()) }()

			snaps, err := b.Snapshots(runID)
			if err != nil {
				return err
			}
			if snaps == nil {
				snaps = []core.ProfileSnapshot{}
			}
			return writeJSON(cmd.OutOrStdout(), snaps)
		},
	}
}

func newCatalogBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file>",
		Short: "Copy the sqlite catalog database to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			b, err := a.openBackend()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, b.Close()) }()

			d, ok := b.(storage.Dumper)
			if !ok {
				return fmt.Errorf("%s storage cannot be backed up", config.GetStorageConfig().Type)
			}
			if err := d.Dump(args[0]); err != nil {
				return err
			}
			a.logger.Info("Catalog backed up", "path", args[0])
			return writeJSON(cmd.OutOrStdout(), map[string]string{"backup": args[0]})
		},
	}
}
