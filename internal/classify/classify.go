// Package classify turns the free-text fields of catalog records into closed
// enums. Rules are evaluated in a fixed priority order and the first rule that
// matches wins. Words match as case-insensitive substrings; short abbreviations
// such as "rn" or "bt" only match as whole tokens.
package classify

import (
	"github.com/reloadkit/cartgeo/internal/util"
)

// Ogive is the curve family of a bullet nose.
type Ogive int

const (
	Spitzer Ogive = iota
	Tangent
	Secant
	Hybrid
	FlatNose
	RoundNose
)

func (o Ogive) String() string {
	switch o {
	case Tangent:
		return "tangent"
	case Secant:
		return "secant"
	case Hybrid:
		return "hybrid"
	case FlatNose:
		return "flat_nose"
	case RoundNose:
		return "round_nose"
	default:
		return "spitzer"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Ogive) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

type rule struct {
	subs  []string
	codes []string
	ogive Ogive
}

var (
	roundNoseCodes = []string{"rn", "lrn", "jrn"}
	flatNoseCodes  = []string{"wc", "swc", "lswc", "fn", "lfn", "jfn", "tfn"}
)

var ogiveTypeRules = []rule{
	{[]string{"vld", "berger", "hybrid"}, nil, Hybrid},
	{[]string{"secant"}, nil, Secant},
	{[]string{"tangent"}, nil, Tangent},
	{[]string{"round"}, roundNoseCodes, RoundNose},
	{[]string{"wadcutter", "flat"}, flatNoseCodes, FlatNose},
	{[]string{"spitzer", "pointed"}, nil, Spitzer},
}

var bulletTypeRules = []rule{
	{[]string{"wadcutter"}, flatNoseCodes, FlatNose},
	{[]string{"round_nose", "round nose"}, roundNoseCodes, RoundNose},
	{[]string{"vld", "berger"}, nil, Hybrid},
}

func match(text string, rules []rule) (Ogive, bool) {
	for _, r := range rules {
		if util.ContainsAny(text, r.subs...) || util.HasWord(text, r.codes...) {
			return r.ogive, true
		}
	}
	return Spitzer, false
}

// OgiveFamily classifies a bullet nose from its ogive_type text, falling back
// to bullet_type and then to Spitzer. estimated is true when ogiveType is blank,
// i.e. the family did not come from the record's own ogive field.
func OgiveFamily(ogiveType, bulletType string) (family Ogive, estimated bool) {
	estimated = util.IsBlank(ogiveType)
	if o, ok := match(ogiveType, ogiveTypeRules); ok {
		return o, estimated
	}
	if o, ok := match(bulletType, bulletTypeRules); ok {
		return o, estimated
	}
	return Spitzer, estimated
}

// Base is the heel shape of a bullet.
type Base int

const (
	BaseUnknown Base = iota
	BaseFlat
	BaseBoatTail
	BaseOther
)

// BaseStyle classifies base_type text. Flat markers win over boat-tail markers.
func BaseStyle(baseType string) Base {
	switch {
	case util.IsBlank(baseType):
		return BaseUnknown
	case util.ContainsAny(baseType, "flat") || util.HasWord(baseType, "fb"):
		return BaseFlat
	case util.ContainsAny(baseType, "boat") || util.HasWord(baseType, "bt", "hpbt", "fmjbt"):
		return BaseBoatTail
	default:
		return BaseOther
	}
}

// IsMatchBullet reports whether bullet_type names a match/target design.
func IsMatchBullet(bulletType string) bool {
	return util.ContainsAny(bulletType, "match", "target", "hpbt", "smk")
}

// Densities in kg/m³.
const (
	DensityCopper   = 8960.0
	DensityLeadCore = 10500.0
)

// MaterialDensity returns the bulk density used for length estimation.
// Any mention of copper (solid copper, monolithic copper) selects copper.
func MaterialDensity(material string) float64 {
	if util.ContainsAll(material, "copper", "solid") || util.ContainsAny(material, "copper") {
		return DensityCopper
	}
	return DensityLeadCore
}

// IsStraightWallText reports whether case_type declares a straight-wall case.
func IsStraightWallText(caseType string) bool {
	return util.ContainsAny(caseType, "straight")
}
