package cmd

import (
	"errors"

	"github.com/reloadkit/cartgeo/internal/engine"
	"github.com/reloadkit/cartgeo/internal/geo"
	"github.com/reloadkit/cartgeo/internal/mesh"
	"github.com/reloadkit/cartgeo/internal/records"
	"github.com/spf13/cobra"
)

// meshBuffers is the JSON form of a mesh, ready for GPU upload.
type meshBuffers struct {
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	Triangles int       `json:"triangles"`
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals"`
	Indices   []uint32  `json:"indices"`
}

type meshOutput struct {
	Sweep string       `json:"sweep"`
	Outer meshBuffers  `json:"outer"`
	Inner *meshBuffers `json:"inner,omitempty"`
}

func buffersOf(m *mesh.Mesh) meshBuffers {
	pos, nrm, idx := m.Buffers()
	return meshBuffers{
		Rows:      m.Rows,
		Columns:   m.Columns,
		Triangles: m.TriangleCount(),
		Positions: pos,
		Normals:   nrm,
		Indices:   idx,
	}
}

func newMeshCmd(a *app) *cobra.Command {
	var (
		asBullet bool
		points   string
		half     bool
		hollow   bool
	)

	cmd := &cobra.Command{
		Use:   "mesh [dimensions-file]",
		Short: "Revolve a profile into a triangle mesh",
		Long: `Revolve a cartridge (hollow) or bullet (solid) profile around its axis.
With --points the profile is read from a JSON array of [x, radius] pairs
instead of a dimensions file.

Examples:
  cartgeo mesh 308win.yaml
  cartgeo mesh --bullet --half 168smk.yaml
  cartgeo mesh --points '[[0,1],[10,1]]' --hollow`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sweep := mesh.Full
			if half {
				sweep = mesh.Half
			}

			var (
				sol engine.Solid
				err error
			)
			switch {
			case points != "":
				pts, perr := geo.ParseProfilePoints(points)
				if perr != nil {
					return perr
				}
				sol, err = a.engine.Mesh(ctx, pts, sweep, hollow)
			case len(args) == 0:
				return errors.New("a dimensions file or --points is required")
			case asBullet:
				d, rerr := records.ReadBullet(args[0])
				if rerr != nil {
					return rerr
				}
				sol, err = a.engine.BulletMesh(ctx, d, sweep)
			default:
				d, rerr := records.ReadCartridge(args[0])
				if rerr != nil {
					return rerr
				}
				sol, err = a.engine.CartridgeMesh(ctx, d, sweep)
			}
			if err != nil {
				return err
			}

			out := meshOutput{Sweep: sweep.String(), Outer: buffersOf(sol.Outer)}
			if sol.Inner != nil {
				inner := buffersOf(sol.Inner)
				out.Inner = &inner
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&asBullet, "bullet", false, "read the file as bullet dimensions")
	f.StringVar(&points, "points", "", "profile points as a JSON array")
	f.BoolVar(&half, "half", false, "revolve through 180 degrees for a cutaway")
	f.BoolVar(&hollow, "hollow", false, "add the inner wall when revolving --points")
	return cmd
}
