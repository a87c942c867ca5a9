package recipe

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ecofocus/internal/catalog"
)

// MaterialQuery is one blend entry of a Query.
type MaterialQuery struct {
	ID            catalog.MaterialID   `json:"id"                      yaml:"id"`
	Share         float64              `json:"share"                   yaml:"share"`
	Spinning      *catalog.Spinning    `json:"spinning,omitempty"      yaml:"spinning,omitempty"`
	Country       *catalog.CountryCode `json:"country,omitempty"       yaml:"country,omitempty"`
	RecycledRatio *float64             `json:"recycledRatio,omitempty" yaml:"recycledRatio,omitempty"`
	CFF           *catalog.CFF         `json:"cff,omitempty"           yaml:"cff,omitempty"`
}

// Query is the raw description of a garment as received from a user. Unset
// fields take their default from the product category, the catalog or the
// countries involved when the query is resolved.
type Query struct {
	Product   catalog.ProductID `json:"product"   yaml:"product"`
	Mass      *float64          `json:"mass,omitempty"      yaml:"mass,omitempty"`
	Materials []MaterialQuery   `json:"materials" yaml:"materials"`

	CountrySpinning     *catalog.CountryCode `json:"countrySpinning,omitempty"     yaml:"countrySpinning,omitempty"`
	CountryFabric       *catalog.CountryCode `json:"countryFabric,omitempty"       yaml:"countryFabric,omitempty"`
	CountryDyeing       *catalog.CountryCode `json:"countryDyeing,omitempty"       yaml:"countryDyeing,omitempty"`
	CountryMaking       *catalog.CountryCode `json:"countryMaking,omitempty"       yaml:"countryMaking,omitempty"`
	CountryDistribution *catalog.CountryCode `json:"countryDistribution,omitempty" yaml:"countryDistribution,omitempty"`
	CountryUse          *catalog.CountryCode `json:"countryUse,omitempty"          yaml:"countryUse,omitempty"`
	CountryEndOfLife    *catalog.CountryCode `json:"countryEndOfLife,omitempty"    yaml:"countryEndOfLife,omitempty"`

	DyeingWeighting   *float64                  `json:"dyeingWeighting,omitempty"   yaml:"dyeingWeighting,omitempty"`
	AirTransportRatio *float64                  `json:"airTransportRatio,omitempty" yaml:"airTransportRatio,omitempty"`
	MakingWaste       *float64                  `json:"makingWaste,omitempty"       yaml:"makingWaste,omitempty"`
	MakingDeadStock   *float64                  `json:"makingDeadStock,omitempty"   yaml:"makingDeadStock,omitempty"`
	MakingComplexity  *catalog.MakingComplexity `json:"makingComplexity,omitempty"  yaml:"makingComplexity,omitempty"`
	YarnSize          *float64                  `json:"yarnSize,omitempty"          yaml:"yarnSize,omitempty"`
	SurfaceMass       *float64                  `json:"surfaceMass,omitempty"       yaml:"surfaceMass,omitempty"`
	Fabric            *catalog.Fabric           `json:"fabric,omitempty"            yaml:"fabric,omitempty"`
	Printing          *Printing                 `json:"printing,omitempty"          yaml:"printing,omitempty"`
	Durability        *float64                  `json:"durability,omitempty"        yaml:"durability,omitempty"`
	Quality           *float64                  `json:"quality,omitempty"           yaml:"quality,omitempty"`
	Reparability      *float64                  `json:"reparability,omitempty"      yaml:"reparability,omitempty"`
	Fading            *bool                     `json:"fading,omitempty"            yaml:"fading,omitempty"`
	DisabledSteps     []Step                    `json:"disabledSteps,omitempty"     yaml:"disabledSteps,omitempty"`
	ElectricityMix    map[Step]float64          `json:"electricityMix,omitempty"    yaml:"electricityMix,omitempty"`
}

// ParseQuery decodes a query written in YAML or JSON.
func ParseQuery(data []byte) (Query, error) {
	var q Query
	if err := yaml.Unmarshal(data, &q); err != nil {
		return Query{}, fmt.Errorf("parsing query: %w", err)
	}
	return q, nil
}

// Key returns a stable digest of q, suitable as a cache key. Two queries
// with the same fields have the same key.
func (q Query) Key() (string, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("encoding query: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
