// Package records reads catalog and single-record files. Files ending in
// .json are decoded as JSON; anything else is read as YAML. Unknown keys are
// rejected in both formats.
package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/reloadkit/cartgeo/pkg/core"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateName is returned when two records of one kind share a name.
var ErrDuplicateName = errors.New("duplicate record name")

// ErrMissingName is returned for catalog records without a name.
var ErrMissingName = errors.New("record has no name")

// Catalog is the content of a seed file.
type Catalog struct {
	Cartridges []core.CartridgeRecord `json:"cartridges" yaml:"cartridges"`
	Bullets    []core.BulletRecord    `json:"bullets" yaml:"bullets"`
	Rifles     []core.RifleRecord     `json:"rifles" yaml:"rifles"`
}

// Len returns the number of records of all kinds.
func (c Catalog) Len() int {
	return len(c.Cartridges) + len(c.Bullets) + len(c.Rifles)
}

// Validate checks that every record is named and names are unique per kind.
func (c Catalog) Validate() error {
	if err := uniqueNames("cartridge", len(c.Cartridges), func(i int) string { return c.Cartridges[i].Name }); err != nil {
		return err
	}
	if err := uniqueNames("bullet", len(c.Bullets), func(i int) string { return c.Bullets[i].Name }); err != nil {
		return err
	}
	return uniqueNames("rifle", len(c.Rifles), func(i int) string { return c.Rifles[i].Name })
}

func uniqueNames(kind string, n int, name func(int) string) error {
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		nm := strings.TrimSpace(name(i))
		if nm == "" {
			return fmt.Errorf("%s #%d: %w", kind, i+1, ErrMissingName)
		}
		if seen[nm] {
			return fmt.Errorf("%s %q: %w", kind, nm, ErrDuplicateName)
		}
		seen[nm] = true
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Decode reads one document from r into v.
func Decode(r io.Reader, asJSON bool, v any) error {
	if asJSON {
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func readFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := Decode(bytes.NewReader(data), isJSON(path), v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// LoadCatalog reads and validates a seed file.
func LoadCatalog(path string) (Catalog, error) {
	var c Catalog
	if err := readFile(path, &c); err != nil {
		return Catalog{}, err
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ReadCartridge reads a file holding one set of cartridge dimensions.
func ReadCartridge(path string) (core.CartridgeDimensions, error) {
	var d core.CartridgeDimensions
	err := readFile(path, &d)
	return d, err
}

// ReadBullet reads a file holding one set of bullet dimensions.
func ReadBullet(path string) (core.BulletDimensions, error) {
	var d core.BulletDimensions
	err := readFile(path, &d)
	return d, err
}

// ReadRifle reads a file holding one set of chamber figures.
func ReadRifle(path string) (core.RifleChamber, error) {
	var c core.RifleChamber
	err := readFile(path, &c)
	return c, err
}
