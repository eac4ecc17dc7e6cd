package records

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reloadkit/cartgeo/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

const catalogYAML = `
cartridges:
  - name: .308 Winchester
    dimensions:
      case_length_mm: 51.18
      base_diameter_mm: 11.96
      neck_diameter_mm: 8.77
      shoulder_angle_deg: 20
  - name: 9mm Luger
    dimensions:
      case_length_mm: 19.15
      base_diameter_mm: 9.96
      neck_diameter_mm: 9.65
      case_type: straight
bullets:
  - name: 168gr HPBT
    dimensions:
      diameter_mm: 7.82
      weight_grains: 168
      ogive_type: secant
rifles:
  - name: Bolt gun
    chamber:
      freebore_mm: 1.5
`

func TestLoadCatalog_YAML(t *testing.T) {
	c, err := LoadCatalog(write(t, "seed.yaml", catalogYAML))
	require.NoError(t, err)

	assert.Equal(t, 4, c.Len())
	require.Len(t, c.Cartridges, 2)
	assert.Equal(t, ".308 Winchester", c.Cartridges[0].Name)
	assert.Equal(t, 51.18, *c.Cartridges[0].Dimensions.CaseLengthMM)
	assert.Nil(t, c.Cartridges[0].Dimensions.NeckLengthMM)
	assert.Equal(t, "straight", c.Cartridges[1].Dimensions.CaseType)
	assert.Equal(t, "secant", c.Bullets[0].Dimensions.OgiveType)
	assert.Equal(t, 1.5, *c.Rifles[0].Chamber.FreeboreMM)
}

func TestLoadCatalog_JSON(t *testing.T) {
	c, err := LoadCatalog(write(t, "seed.JSON", `{
		"bullets": [{"name": "55gr FMJ", "dimensions": {"diameter_mm": 5.7}}]
	}`))
	require.NoError(t, err)
	assert.Empty(t, c.Cartridges)
	require.Len(t, c.Bullets, 1)
	assert.Equal(t, 5.7, *c.Bullets[0].Dimensions.DiameterMM)
}

func TestLoadCatalog_Empty(t *testing.T) {
	c, err := LoadCatalog(write(t, "seed.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoadCatalog_UnknownField(t *testing.T) {
	_, err := LoadCatalog(write(t, "seed.yaml", "cartridges:\n  - name: x\n    dimensions:\n      case_lenght_mm: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")

	_, err = LoadCatalog(write(t, "seed.json", `{"rifle": []}`))
	assert.Error(t, err)
}

func TestLoadCatalog_Names(t *testing.T) {
	_, err := LoadCatalog(write(t, "seed.yaml", "bullets:\n  - name: a\n  - name: ' a '\n"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = LoadCatalog(write(t, "seed.yaml", "rifles:\n  - chamber: {}\n"))
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadSingleRecords(t *testing.T) {
	d, err := ReadCartridge(write(t, "c.yaml", "case_length_mm: 51.18\nbase_diameter_mm: 11.96\nneck_diameter_mm: 8.77\n"))
	require.NoError(t, err)
	assert.Equal(t, core.Float(8.77), d.NeckDiameterMM)

	b, err := ReadBullet(write(t, "b.json", `{"diameter_mm": 7.82, "ogive_type": "hybrid"}`))
	require.NoError(t, err)
	assert.Equal(t, "hybrid", b.OgiveType)

	r, err := ReadRifle(write(t, "r.yaml", "throat_angle_deg: 1.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 1.5, *r.ThroatAngleDeg)
}

func TestDecode_Reader(t *testing.T) {
	var d core.BulletDimensions
	require.NoError(t, Decode(strings.NewReader("diameter_mm: 6.72\n"), false, &d))
	assert.Equal(t, 6.72, *d.DiameterMM)
}
