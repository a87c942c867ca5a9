package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/logging"
	"github.com/rshade/ecofocus/internal/unit"
)

// tables in deletion order.
//
//nolint:gochecknoglobals // Fixed schema table list.
var tables = []string{"distances", "products", "materials", "countries", "processes", "impact_definitions", "manifest"}

// Import replaces the stored catalog with the content of snap in one
// transaction.
func (s *Store) Import(ctx context.Context, snap *catalog.Snapshot) (retErr error) {
	data := snap.Data()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import transaction: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range tables {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	steps := []func(context.Context, *sql.Tx, catalog.Data) error{
		insertManifest, insertDefinitions, insertProcesses, insertCountries,
		insertMaterials, insertProducts, insertDistances,
	}
	for _, step := range steps {
		if err = step(ctx, tx, data); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit import transaction: %w", err)
	}
	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("component", "sqlstore").
		Str("version", data.Manifest.Version).
		Int("processes", len(data.Processes)).
		Int("materials", len(data.Materials)).
		Msg("catalog imported")
	return nil
}

func insertManifest(ctx context.Context, tx *sql.Tx, d catalog.Data) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO manifest (id, version, name, description) VALUES (1, ?, ?, ?)`,
		d.Manifest.Version, d.Manifest.Name, d.Manifest.Description)
	if err != nil {
		return fmt.Errorf("insert manifest: %w", err)
	}
	return nil
}

func insertDefinitions(ctx context.Context, tx *sql.Tx, d catalog.Data) error {
	for i, def := range d.Definitions {
		scopes, err := json.Marshal(def.Scopes)
		if err != nil {
			return err
		}
		var pefN, pefW, ecsN, ecsW sql.NullFloat64
		color := ""
		if def.PEF != nil {
			pefN = sql.NullFloat64{Float64: def.PEF.Normalization, Valid: true}
			pefW = sql.NullFloat64{Float64: def.PEF.Weighting, Valid: true}
		}
		if def.Ecoscore != nil {
			ecsN = sql.NullFloat64{Float64: def.Ecoscore.Normalization, Valid: true}
			ecsW = sql.NullFloat64{Float64: def.Ecoscore.Weighting, Valid: true}
			color = def.Ecoscore.Color
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO impact_definitions
			(trigram, ord, label, description, unit, decimals, quality,
			 pef_normalization, pef_weighting, ecs_normalization, ecs_weighting, ecs_color, scopes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			def.Code.String(), i, def.Label, def.Description, def.Unit, def.Decimals, int(def.Quality),
			pefN, pefW, ecsN, ecsW, color, string(scopes)); err != nil {
			return fmt.Errorf("insert impact definition %s: %w", def.Code, err)
		}
	}
	return nil
}

func insertProcesses(ctx context.Context, tx *sql.Tx, d catalog.Data) error {
	for i, p := range d.Processes {
		impacts, err := json.Marshal(p.Impacts)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO processes
			(id, ord, name, alias, unit, source, step_usage, impacts, heat_mj, elec_mj, elec_pppm, waste, density)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(p.ID), i, p.Name, nullString(string(p.Alias)), string(p.Unit), p.Source, p.StepUsage,
			string(impacts), p.HeatMJ.InMegajoules(), p.ElecMJ.InMegajoules(), p.ElecPPPM,
			p.Waste.Float(), p.Density); err != nil {
			return fmt.Errorf("insert process %s: %w", p.ID, err)
		}
	}
	return nil
}

func insertCountries(ctx context.Context, tx *sql.Tx, d catalog.Data) error {
	for i, c := range d.Countries {
		scopes, err := json.Marshal(c.Scopes)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO countries
			(code, ord, name, zone, electricity_process, heat_process, dyeing_weighting,
			 air_transport_ratio, aquatic_pollution, scopes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(c.Code), i, c.Name, c.Zone, string(c.ElectricityProcess), string(c.HeatProcess),
			c.DyeingWeighting.Float(), c.AirTransportRatio.Float(), string(c.AquaticPollution),
			string(scopes)); err != nil {
			return fmt.Errorf("insert country %s: %w", c.Code, err)
		}
	}
	return nil
}

func insertMaterials(ctx context.Context, tx *sql.Tx, d catalog.Data) error {
	for i, m := range d.Materials {
		var alloc, quality sql.NullFloat64
		if m.CFF != nil {
			alloc = sql.NullFloat64{Float64: m.CFF.ManufacturerAllocation.Float(), Valid: true}
			quality = sql.NullFloat64{Float64: m.CFF.RecycledQualityRatio.Float(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO materials
			(id, ord, name, short_name, origin, default_country, material_process,
			 recycled_process, recycled_from, manufacturer_allocation, recycled_quality_ratio)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(m.ID), i, m.Name, m.ShortName, string(m.Origin), string(m.DefaultCountry),
			string(m.Process), nullString(string(m.RecycledProcess)), nullString(string(m.RecycledFrom)),
			alloc, quality); err != nil {
			return fmt.Errorf("insert material %s: %w", m.ID, err)
		}
	}
	return nil
}

func insertProducts(ctx context.Context, tx *sql.Tx, d catalog.Data) error {
	for i, p := range d.Products {
		if _, err := tx.ExecContext(ctx, `INSERT INTO products
			(id, ord, name, mass, surface_mass, yarn_size, fabric, making_complexity, making_waste,
			 making_dead_stock, fading, volume, ironing_process, non_ironing_process, days_of_wear, wears_per_cycle)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(p.ID), i, p.Name, p.Mass.InKilograms(), p.SurfaceMass.InGramsPerSquareMeter(),
			p.YarnSize.InKilometersPerKg(), string(p.Fabric), string(p.MakingComplexity),
			p.MakingWaste.Float(), p.MakingDeadStock.Float(), p.Fading, p.Volume.InCubicMeters(),
			string(p.Use.IroningProcess), string(p.Use.NonIroningProcess), p.Use.DaysOfWear,
			p.Use.WearsPerCycle); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}
	return nil
}

func insertDistances(ctx context.Context, tx *sql.Tx, d catalog.Data) error {
	insert := func(from, to catalog.CountryCode, dist catalog.Distance) error {
		var ratio sql.NullFloat64
		if dist.RoadSeaRatio != nil {
			ratio = sql.NullFloat64{Float64: dist.RoadSeaRatio.Float(), Valid: true}
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO distances
			(from_country, to_country, road, sea, air, road_sea_ratio) VALUES (?, ?, ?, ?, ?, ?)`,
			string(from), string(to), dist.Road.InKilometers(), dist.Sea.InKilometers(),
			dist.Air.InKilometers(), ratio)
		if err != nil {
			return fmt.Errorf("insert distance %s-%s: %w", from, to, err)
		}
		return nil
	}
	if err := insert("", "", d.Distances.SameCountry); err != nil {
		return err
	}
	for from, row := range d.Distances.Routes {
		for to, dist := range row {
			if err := insert(from, to, dist); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load reads the stored catalog without validating it. It fails when
// nothing was imported.
func (s *Store) Load(ctx context.Context) (catalog.Data, error) {
	var data catalog.Data
	err := s.db.QueryRowContext(ctx, `SELECT version, name, description FROM manifest WHERE id = 1`).
		Scan(&data.Manifest.Version, &data.Manifest.Name, &data.Manifest.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return data, &catalog.ConfigurationError{Reason: fmt.Sprintf("database %s holds no catalog", s.path)}
		}
		return data, fmt.Errorf("select manifest: %w", err)
	}

	loaders := []func(context.Context, *catalog.Data) error{
		s.loadDefinitions, s.loadProcesses, s.loadCountries, s.loadMaterials, s.loadProducts, s.loadDistances,
	}
	for _, load := range loaders {
		if err = load(ctx, &data); err != nil {
			return catalog.Data{}, err
		}
	}
	return data, nil
}

func (s *Store) loadDefinitions(ctx context.Context, data *catalog.Data) error {
	return s.each(ctx, "impact definitions", `SELECT trigram, label, description, unit, decimals, quality,
		pef_normalization, pef_weighting, ecs_normalization, ecs_weighting, ecs_color, scopes
		FROM impact_definitions ORDER BY ord`, func(rows *sql.Rows) error {
		var (
			def                    impact.Definition
			trigram, color, scopes string
			quality                int
			pefN, pefW, ecsN, ecsW sql.NullFloat64
		)
		if err := rows.Scan(&trigram, &def.Label, &def.Description, &def.Unit, &def.Decimals, &quality,
			&pefN, &pefW, &ecsN, &ecsW, &color, &scopes); err != nil {
			return err
		}
		code, err := impact.ParseCode(trigram)
		if err != nil {
			return err
		}
		def.Code = code
		def.Quality = impact.Quality(quality)
		if pefN.Valid {
			def.PEF = &impact.Weighting{Normalization: pefN.Float64, Weighting: pefW.Float64}
		}
		if ecsN.Valid {
			def.Ecoscore = &impact.EcoscoreData{
				Normalization: ecsN.Float64,
				Weighting:     ecsW.Float64,
				Color:         color,
			}
		}
		if err = json.Unmarshal([]byte(scopes), &def.Scopes); err != nil {
			return err
		}
		data.Definitions = append(data.Definitions, def)
		return nil
	})
}

func (s *Store) loadProcesses(ctx context.Context, data *catalog.Data) error {
	return s.each(ctx, "processes", `SELECT id, name, alias, unit, source, step_usage, impacts,
		heat_mj, elec_mj, elec_pppm, waste, density FROM processes ORDER BY ord`, func(rows *sql.Rows) error {
		var (
			p                       catalog.Process
			id, unitName, impacts   string
			alias                   sql.NullString
			heat, elec, waste, dens float64
		)
		if err := rows.Scan(&id, &p.Name, &alias, &unitName, &p.Source, &p.StepUsage, &impacts,
			&heat, &elec, &p.ElecPPPM, &waste, &dens); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(impacts), &p.Impacts); err != nil {
			return fmt.Errorf("process %s impacts: %w", id, err)
		}
		p.ID = catalog.ProcessID(id)
		p.Alias = catalog.Alias(alias.String)
		p.Unit = catalog.ProcessUnit(unitName)
		p.HeatMJ = unit.Megajoules(heat)
		p.ElecMJ = unit.Megajoules(elec)
		p.Waste = unit.Ratio(waste)
		p.Density = dens
		data.Processes = append(data.Processes, p)
		return nil
	})
}

func (s *Store) loadCountries(ctx context.Context, data *catalog.Data) error {
	return s.each(ctx, "countries", `SELECT code, name, zone, electricity_process, heat_process,
		dyeing_weighting, air_transport_ratio, aquatic_pollution, scopes FROM countries ORDER BY ord`,
		func(rows *sql.Rows) error {
			var (
				c                                 catalog.Country
				code, elec, heat, aquatic, scopes string
				dyeing, air                       float64
			)
			if err := rows.Scan(&code, &c.Name, &c.Zone, &elec, &heat, &dyeing, &air, &aquatic, &scopes); err != nil {
				return err
			}
			if err := json.Unmarshal([]byte(scopes), &c.Scopes); err != nil {
				return err
			}
			c.Code = catalog.CountryCode(code)
			c.ElectricityProcess = catalog.ProcessID(elec)
			c.HeatProcess = catalog.ProcessID(heat)
			c.DyeingWeighting = unit.Ratio(dyeing)
			c.AirTransportRatio = unit.Ratio(air)
			c.AquaticPollution = catalog.AquaticPollution(aquatic)
			data.Countries = append(data.Countries, c)
			return nil
		})
}

func (s *Store) loadMaterials(ctx context.Context, data *catalog.Data) error {
	return s.each(ctx, "materials", `SELECT id, name, short_name, origin, default_country, material_process,
		recycled_process, recycled_from, manufacturer_allocation, recycled_quality_ratio
		FROM materials ORDER BY ord`, func(rows *sql.Rows) error {
		var (
			m                             catalog.Material
			id, origin, country, process  string
			recycledProcess, recycledFrom sql.NullString
			alloc, quality                sql.NullFloat64
		)
		if err := rows.Scan(&id, &m.Name, &m.ShortName, &origin, &country, &process,
			&recycledProcess, &recycledFrom, &alloc, &quality); err != nil {
			return err
		}
		m.ID = catalog.MaterialID(id)
		m.Origin = catalog.Origin(origin)
		m.DefaultCountry = catalog.CountryCode(country)
		m.Process = catalog.ProcessID(process)
		m.RecycledProcess = catalog.ProcessID(recycledProcess.String)
		m.RecycledFrom = catalog.MaterialID(recycledFrom.String)
		if alloc.Valid {
			m.CFF = &catalog.CFF{
				ManufacturerAllocation: unit.Ratio(alloc.Float64),
				RecycledQualityRatio:   unit.Ratio(quality.Float64),
			}
		}
		data.Materials = append(data.Materials, m)
		return nil
	})
}

func (s *Store) loadProducts(ctx context.Context, data *catalog.Data) error {
	return s.each(ctx, "products", `SELECT id, name, mass, surface_mass, yarn_size, fabric, making_complexity,
		making_waste, making_dead_stock, fading, volume, ironing_process, non_ironing_process,
		days_of_wear, wears_per_cycle FROM products ORDER BY ord`, func(rows *sql.Rows) error {
		var (
			p                                         catalog.Product
			id, fabric, complexity, ironing, washing  string
			mass, surface, yarn, waste, stock, volume float64
		)
		if err := rows.Scan(&id, &p.Name, &mass, &surface, &yarn, &fabric, &complexity, &waste, &stock,
			&p.Fading, &volume, &ironing, &washing, &p.Use.DaysOfWear, &p.Use.WearsPerCycle); err != nil {
			return err
		}
		p.ID = catalog.ProductID(id)
		p.Mass = unit.Kilograms(mass)
		p.SurfaceMass = unit.GramsPerSquareMeter(surface)
		p.YarnSize = unit.MetricNumber(yarn)
		p.Fabric = catalog.Fabric(fabric)
		p.MakingComplexity = catalog.MakingComplexity(complexity)
		p.MakingWaste = unit.Ratio(waste)
		p.MakingDeadStock = unit.Ratio(stock)
		p.Volume = unit.CubicMeters(volume)
		p.Use.IroningProcess = catalog.ProcessID(ironing)
		p.Use.NonIroningProcess = catalog.ProcessID(washing)
		data.Products = append(data.Products, p)
		return nil
	})
}

func (s *Store) loadDistances(ctx context.Context, data *catalog.Data) error {
	data.Distances.Routes = make(map[catalog.CountryCode]map[catalog.CountryCode]catalog.Distance)
	return s.each(ctx, "distances", `SELECT from_country, to_country, road, sea, air, road_sea_ratio
		FROM distances`, func(rows *sql.Rows) error {
		var (
			from, to       string
			road, sea, air float64
			ratio          sql.NullFloat64
		)
		if err := rows.Scan(&from, &to, &road, &sea, &air, &ratio); err != nil {
			return err
		}
		d := catalog.Distance{Road: unit.Kilometers(road), Sea: unit.Kilometers(sea), Air: unit.Kilometers(air)}
		if ratio.Valid {
			r := unit.Ratio(ratio.Float64)
			d.RoadSeaRatio = &r
		}
		if from == "" && to == "" {
			data.Distances.SameCountry = d
			return nil
		}
		src := catalog.CountryCode(from)
		if data.Distances.Routes[src] == nil {
			data.Distances.Routes[src] = make(map[catalog.CountryCode]catalog.Distance)
		}
		data.Distances.Routes[src][catalog.CountryCode(to)] = d
		return nil
	})
}

// each runs query and calls scan for every row.
func (s *Store) each(ctx context.Context, what, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("select %s: %w", what, err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err = scan(rows); err != nil {
			return fmt.Errorf("scan %s: %w", what, err)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", what, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
