package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/ecofocus/internal/impact"
)

// Manifest describes a catalog dataset.
type Manifest struct {
	Version     string `json:"version"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Data is the raw content of a catalog, as read from files or a database.
type Data struct {
	Manifest    Manifest
	Definitions []impact.Definition
	Processes   []Process
	Materials   []Material
	Products    []Product
	Countries   []Country
	Distances   Distances
}

// Snapshot is an immutable, validated catalog. All lookups are safe for
// concurrent use.
type Snapshot struct {
	manifest  Manifest
	version   *semver.Version
	defs      *impact.Definitions
	processes []Process
	byID      map[ProcessID]int
	byAlias   map[Alias]int
	byName    map[string]int
	materials []Material
	matIdx    map[MaterialID]int
	products  []Product
	prodIdx   map[ProductID]int
	countries []Country
	ctryIdx   map[CountryCode]int
	distances Distances
	wellKnown WellKnown
	digest    string
}

// Option configures New.
type Option func(*options)

type options struct {
	constraint string
}

// WithVersionConstraint replaces the accepted dataset version range.
func WithVersionConstraint(constraint string) Option {
	return func(o *options) {
		if constraint != "" {
			o.constraint = constraint
		}
	}
}

// New validates data and builds a Snapshot. Every failure is a
// *ConfigurationError: dangling references, duplicate identifiers, an
// incompatible dataset version or a missing well-known process.
//
//nolint:gocognit,funlen // Sequential validation of each reference table.
func New(data Data, opts ...Option) (*Snapshot, error) {
	o := options{constraint: SupportedVersions}
	for _, opt := range opts {
		opt(&o)
	}

	version, err := checkVersion(data.Manifest.Version, o.constraint)
	if err != nil {
		return nil, err
	}

	defs, err := impact.NewDefinitions(data.Definitions)
	if err != nil {
		return nil, configError(err, "impact definitions")
	}

	s := &Snapshot{
		manifest:  data.Manifest,
		version:   version,
		defs:      defs,
		processes: slices.Clone(data.Processes),
		byID:      make(map[ProcessID]int, len(data.Processes)),
		byAlias:   make(map[Alias]int),
		byName:    make(map[string]int, len(data.Processes)),
		materials: slices.Clone(data.Materials),
		matIdx:    make(map[MaterialID]int, len(data.Materials)),
		products:  slices.Clone(data.Products),
		prodIdx:   make(map[ProductID]int, len(data.Products)),
		countries: slices.Clone(data.Countries),
		ctryIdx:   make(map[CountryCode]int, len(data.Countries)),
		distances: data.Distances.clone(),
	}

	for i, p := range s.processes {
		if p.ID == "" {
			return nil, configError(nil, "process %q has no id", p.Name)
		}
		if !p.Unit.Valid() {
			return nil, configError(nil, "process %q has unknown unit %q", p.ID, p.Unit)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, configError(nil, "duplicate process id %q", p.ID)
		}
		s.byID[p.ID] = i
		if _, dup := s.byName[p.Name]; !dup {
			s.byName[p.Name] = i
		}
		if p.Alias != "" {
			if _, dup := s.byAlias[p.Alias]; dup {
				return nil, configError(nil, "duplicate process alias %q", p.Alias)
			}
			s.byAlias[p.Alias] = i
		}
	}

	for i, c := range s.countries {
		if _, dup := s.ctryIdx[c.Code]; dup {
			return nil, configError(nil, "duplicate country %q", c.Code)
		}
		if !c.AquaticPollution.Valid() {
			return nil, configError(nil, "country %q has unknown aquatic pollution scenario %q", c.Code, c.AquaticPollution)
		}
		for _, ref := range []ProcessID{c.ElectricityProcess, c.HeatProcess} {
			if _, err := s.ProcessByID(ref); err != nil {
				return nil, configError(err, "country %q", c.Code)
			}
		}
		s.ctryIdx[c.Code] = i
	}

	for i, m := range s.materials {
		if _, dup := s.matIdx[m.ID]; dup {
			return nil, configError(nil, "duplicate material %q", m.ID)
		}
		s.matIdx[m.ID] = i
	}
	for _, m := range s.materials {
		if err := s.checkMaterial(m); err != nil {
			return nil, configError(err, "material %q", m.ID)
		}
	}

	for i, p := range s.products {
		if _, dup := s.prodIdx[p.ID]; dup {
			return nil, configError(nil, "duplicate product %q", p.ID)
		}
		if err := s.checkProduct(p); err != nil {
			return nil, configError(err, "product %q", p.ID)
		}
		s.prodIdx[p.ID] = i
	}

	if s.wellKnown, err = resolveWellKnown(s.ProcessByAlias); err != nil {
		return nil, err
	}
	if s.digest, err = digest(s.Data()); err != nil {
		return nil, configError(err, "catalog data")
	}
	return s, nil
}

// digest returns the hex SHA-256 of the JSON encoding of data. JSON object
// keys are sorted, so equal data always gives the same digest.
func digest(data Data) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func (s *Snapshot) checkMaterial(m Material) error {
	if !m.Origin.Valid() {
		return fmt.Errorf("unknown origin %q", m.Origin)
	}
	if _, err := s.ProcessByID(m.Process); err != nil {
		return err
	}
	if m.RecycledProcess != "" {
		if _, err := s.ProcessByID(m.RecycledProcess); err != nil {
			return err
		}
	}
	if m.RecycledFrom != "" {
		if _, err := s.Material(m.RecycledFrom); err != nil {
			return err
		}
	}
	if _, err := s.Country(m.DefaultCountry); err != nil {
		return err
	}
	return nil
}

func (s *Snapshot) checkProduct(p Product) error {
	if !p.Fabric.Valid() {
		return fmt.Errorf("unknown fabric %q", p.Fabric)
	}
	if !p.MakingComplexity.Valid() {
		return fmt.Errorf("unknown making complexity %q", p.MakingComplexity)
	}
	if p.MakingWaste >= 1 || p.MakingDeadStock >= 1 {
		return fmt.Errorf("waste ratios must be below 1")
	}
	for _, ref := range []ProcessID{p.Use.IroningProcess, p.Use.NonIroningProcess} {
		if _, err := s.ProcessByID(ref); err != nil {
			return err
		}
	}
	return nil
}

// Manifest returns the dataset manifest.
func (s *Snapshot) Manifest() Manifest { return s.manifest }

// Digest identifies the content of the catalog. Two snapshots share a
// digest only when every table is equal, whatever their manifest version.
func (s *Snapshot) Digest() string { return s.digest }

// Version returns the dataset version.
func (s *Snapshot) Version() *semver.Version {
	v := *s.version
	return &v
}

// Definitions returns the impact definitions.
func (s *Snapshot) Definitions() *impact.Definitions { return s.defs }

// Definition returns the definition of code c.
func (s *Snapshot) Definition(c impact.Code) (impact.Definition, error) {
	if !c.Valid() {
		return impact.Definition{}, notFound(KindDefinition, c.String())
	}
	return s.defs.Get(c), nil
}

// WellKnown returns the processes resolved by alias.
func (s *Snapshot) WellKnown() WellKnown { return s.wellKnown }

// ProcessByID returns the process with the given id.
func (s *Snapshot) ProcessByID(id ProcessID) (Process, error) {
	if i, ok := s.byID[id]; ok {
		return s.processes[i], nil
	}
	return Process{}, notFound(KindProcess, string(id))
}

// ProcessByAlias returns the process registered under alias.
func (s *Snapshot) ProcessByAlias(alias Alias) (Process, error) {
	if i, ok := s.byAlias[alias]; ok {
		return s.processes[i], nil
	}
	return Process{}, notFound(KindAlias, string(alias))
}

// ProcessByName returns the first process named name.
func (s *Snapshot) ProcessByName(name string) (Process, error) {
	if i, ok := s.byName[name]; ok {
		return s.processes[i], nil
	}
	return Process{}, notFound(KindProcess, name)
}

// Material returns the material with the given id.
func (s *Snapshot) Material(id MaterialID) (Material, error) {
	if i, ok := s.matIdx[id]; ok {
		return s.materials[i], nil
	}
	return Material{}, notFound(KindMaterial, string(id))
}

// Product returns the product category with the given id.
func (s *Snapshot) Product(id ProductID) (Product, error) {
	if i, ok := s.prodIdx[id]; ok {
		return s.products[i], nil
	}
	return Product{}, notFound(KindProduct, string(id))
}

// Country returns the country with the given code.
func (s *Snapshot) Country(code CountryCode) (Country, error) {
	if i, ok := s.ctryIdx[code]; ok {
		return s.countries[i], nil
	}
	return Country{}, notFound(KindCountry, string(code))
}

// Distance returns the distance between two countries.
func (s *Snapshot) Distance(from, to CountryCode) (Distance, error) {
	if d, ok := s.distances.Between(from, to); ok {
		return d, nil
	}
	return Distance{}, notFound(KindDistance, fmt.Sprintf("%s-%s", from, to))
}

// Processes returns every process in catalog order.
func (s *Snapshot) Processes() []Process { return slices.Clone(s.processes) }

// Materials returns every material in catalog order.
func (s *Snapshot) Materials() []Material { return slices.Clone(s.materials) }

// Products returns every product category in catalog order.
func (s *Snapshot) Products() []Product { return slices.Clone(s.products) }

// Countries returns every country in catalog order.
func (s *Snapshot) Countries() []Country { return slices.Clone(s.countries) }

// Data returns a deep enough copy of the snapshot's content to be exported
// or fed back to New.
func (s *Snapshot) Data() Data {
	return Data{
		Manifest:    s.manifest,
		Definitions: s.defs.All(),
		Processes:   s.Processes(),
		Materials:   s.Materials(),
		Products:    s.Products(),
		Countries:   s.Countries(),
		Distances:   s.distances.clone(),
	}
}
