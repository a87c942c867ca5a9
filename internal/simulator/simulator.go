// Package simulator runs the life-cycle pipeline of a garment: it propagates
// masses through the active stages, computes each stage's impacts and the
// transport legs between them, and aggregates the totals.
package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/formula"
	"github.com/rshade/ecofocus/internal/impact"
	"github.com/rshade/ecofocus/internal/logging"
	"github.com/rshade/ecofocus/internal/recipe"
	"github.com/rshade/ecofocus/internal/transport"
	"github.com/rshade/ecofocus/internal/unit"
)

// run holds the state of one simulation.
type run struct {
	db      *catalog.Snapshot
	wk      catalog.WellKnown
	r       *recipe.Recipe
	stages  []Stage
	blend   []materialMass
	cycles  int
	daysUse float64
}

// materialMass is the share of the spun yarn produced from one material.
type materialMass struct {
	input  recipe.MaterialInput
	output unit.Mass
	amount formula.Amount
}

// Simulate computes the impacts of r against db. The context is only used
// for logging. The result is fully determined by db and r.
func Simulate(ctx context.Context, db *catalog.Snapshot, r *recipe.Recipe) (*Result, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	if r == nil {
		return nil, fmt.Errorf("simulate: %w", &recipe.ConstraintError{Field: "recipe", Reason: "recipe is required"})
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	s := &run{db: db, wk: db.WellKnown(), r: r}
	s.daysUse, s.cycles = formula.UseCycles(r.Product.Use, r.Durability)
	s.buildStages()
	if err := s.propagateMass(); err != nil {
		return nil, err
	}
	for i := range s.stages {
		if err := s.computeStage(i); err != nil {
			return nil, fmt.Errorf("simulate %s: %w", s.stages[i].Label, err)
		}
		if err := s.computeLeg(i); err != nil {
			return nil, fmt.Errorf("simulate %s transport: %w", s.stages[i].Label, err)
		}
		st := s.stages[i]
		log.Debug().Ctx(ctx).
			Str("component", "simulator").
			Str("stage", string(st.Label)).
			Str("country", string(st.Country)).
			Float64("input_kg", st.InputMass.InKilograms()).
			Float64("cch", st.Impacts.Get(impact.Cch)).
			Msg("stage computed")
	}

	res := s.result()
	log.Info().Ctx(ctx).
		Str("component", "simulator").
		Str("product", string(r.Product.ID)).
		Int("stages", len(res.Stages)).
		Float64("pef", res.Impacts.Get(impact.Pef)).
		Dur("duration", time.Since(start)).
		Msg("simulation complete")
	return res, nil
}

func (s *run) buildStages() {
	for _, step := range s.r.ActiveSteps() {
		s.stages = append(s.stages, Stage{
			Label:    step,
			Country:  s.r.Countries.For(step),
			Editable: step.Editable(),
		})
	}
}

// propagateMass walks the active stages backwards from the product mass.
// Each stage's output is the next active stage's input.
func (s *run) propagateMass() error {
	mass := s.r.Mass
	for i := len(s.stages) - 1; i >= 0; i-- {
		st := &s.stages[i]
		st.OutputMass = mass
		amount, err := s.inputFor(st.Label, mass)
		if err != nil {
			return fmt.Errorf("propagating mass through %s: %w", st.Label, err)
		}
		st.InputMass = amount.Mass
		st.Waste = amount.Waste
		mass = amount.Mass
	}
	return nil
}

func (s *run) inputFor(step recipe.Step, output unit.Mass) (formula.Amount, error) {
	switch step {
	case recipe.StepMaking:
		stock := formula.MakingDeadStock(s.r.MakingDeadStock, output)
		cut := formula.MakingWaste(s.r.MakingWaste, stock.Mass)
		return formula.Amount{Mass: cut.Mass, Waste: cut.Mass.Minus(output)}, nil
	case recipe.StepFabric:
		return formula.GenericWaste(s.wk.FabricProcess(s.r.Fabric).Waste, output), nil
	case recipe.StepSpinning:
		return s.spinningInput(output)
	default:
		return formula.Amount{Mass: output}, nil
	}
}

// spinningInput applies each material's process waste to its share of the
// yarn.
func (s *run) spinningInput(output unit.Mass) (formula.Amount, error) {
	var waste unit.Mass
	s.blend = s.blend[:0]
	for _, in := range s.r.Materials {
		p, err := s.db.ProcessByID(in.Material.Process)
		if err != nil {
			return formula.Amount{}, err
		}
		share := output.MultiplyBy(in.Share.Float())
		amount := formula.GenericWaste(p.Waste, share)
		s.blend = append(s.blend, materialMass{input: in, output: share, amount: amount})
		waste = waste.Plus(amount.Waste)
	}
	return formula.Amount{Mass: output.Plus(waste), Waste: waste}, nil
}

// energy returns the country energy processes of a step, with the custom
// electricity mix applied to climate change only.
func (s *run) energy(step recipe.Step, code catalog.CountryCode) (formula.Energy, error) {
	country, err := s.db.Country(code)
	if err != nil {
		return formula.Energy{}, err
	}
	elec, err := s.db.ProcessByID(country.ElectricityProcess)
	if err != nil {
		return formula.Energy{}, err
	}
	heat, err := s.db.ProcessByID(country.HeatProcess)
	if err != nil {
		return formula.Energy{}, err
	}
	if mix, ok := s.r.ElectricityMix[step]; ok {
		elec.Impacts[impact.Cch] = mix
	}
	return formula.Energy{Elec: elec, Heat: heat}, nil
}

//nolint:gocyclo,cyclop,funlen // One branch per life-cycle step.
func (s *run) computeStage(i int) error {
	st := &s.stages[i]
	energy, err := s.energy(st.Label, st.Country)
	if err != nil {
		return err
	}
	country, err := s.db.Country(st.Country)
	if err != nil {
		return err
	}

	var out formula.Output
	switch st.Label {
	case recipe.StepSpinning:
		for _, m := range s.blend {
			virgin, err := s.db.ProcessByID(m.input.Material.Process)
			if err != nil {
				return err
			}
			recycled := virgin
			if m.input.Material.RecycledProcess != "" {
				if recycled, err = s.db.ProcessByID(m.input.Material.RecycledProcess); err != nil {
					return err
				}
			}
			out = out.Plus(formula.Output{Impacts: formula.MaterialImpacts(
				virgin.Impacts, recycled.Impacts, m.input.RecycledRatio, m.input.CFF, m.amount.Mass)})
			out = out.Plus(formula.Spinning(m.output, m.input.Spinning, s.r.YarnSize, energy))
			st.Processes = append(st.Processes, virgin.Name)
			if m.input.RecycledRatio > 0 {
				st.Processes = append(st.Processes, recycled.Name)
			}
		}

	case recipe.StepFabric:
		p := s.wk.FabricProcess(s.r.Fabric)
		if s.r.Fabric.IsKnitted() {
			out = formula.Knitting(st.OutputMass, p, energy)
		} else {
			out = formula.Weaving(st.OutputMass, s.r.SurfaceMass, s.r.YarnSize, p, energy)
		}
		st.Processes = append(st.Processes, p.Name)

	case recipe.StepEnnobling:
		m := st.OutputMass
		out = formula.Dyeing(m, s.r.DyeingWeighting, s.wk.DyeingLow, s.wk.DyeingHigh, s.wk.DyeingToxicity,
			country.AquaticPollution, energy)
		out = out.Plus(formula.Bleaching(m, s.wk.Bleaching, country.AquaticPollution))
		st.Processes = append(st.Processes, s.wk.DyeingHigh.Name, s.wk.DyeingLow.Name, s.wk.Bleaching.Name)
		if pr := s.r.Printing; pr != nil {
			p := s.wk.PrintingPigment
			if pr.Kind == recipe.PrintingSubstantive {
				p = s.wk.PrintingSubstantive
			}
			out = out.Plus(formula.Printing(m, s.r.SurfaceMass, pr.Ratio, p, energy))
			st.Processes = append(st.Processes, p.Name)
		}
		out = out.Plus(formula.Finishing(m, s.wk.Finishing, energy))
		st.Processes = append(st.Processes, s.wk.Finishing.Name)

	case recipe.StepMaking:
		var fading *catalog.Process
		if s.r.Fading {
			p := s.wk.Fading
			fading = &p
			st.Processes = append(st.Processes, p.Name)
		}
		out = formula.Making(st.OutputMass, s.r.MakingComplexity, fading, energy)

	case recipe.StepDistribution:
		out = formula.Distribution(st.OutputMass, s.wk.DistributionTransport)
		st.Processes = append(st.Processes, s.wk.DistributionTransport.Name)

	case recipe.StepUse:
		use := s.r.Product.Use
		ironing, err := s.db.ProcessByID(use.IroningProcess)
		if err != nil {
			return err
		}
		washing, err := s.db.ProcessByID(use.NonIroningProcess)
		if err != nil {
			return err
		}
		out = formula.Use(st.OutputMass, s.cycles, ironing, washing, energy.Elec)
		st.Processes = append(st.Processes, ironing.Name, washing.Name)

	case recipe.StepEndOfLife:
		out = formula.EndOfLife(st.OutputMass, s.r.Product.Volume, s.wk.PassengerCar, s.wk.EndOfLife, energy)
		st.Processes = append(st.Processes, s.wk.PassengerCar.Name, s.wk.EndOfLife.Name)
	}

	st.Impacts = impact.Recompute(out.Impacts, s.db.Definitions())
	st.HeatMJ = out.Heat.InMegajoules()
	st.KWh = out.Electricity.InKilowattHours()
	return nil
}

// legSteps are the steps whose goods travel to the next active stage.
// Downstream of making, distribution carries its own impact and the
// consumer legs are not modeled.
func legStep(step recipe.Step) bool {
	switch step {
	case recipe.StepSpinning, recipe.StepFabric, recipe.StepEnnobling, recipe.StepMaking:
		return true
	default:
		return false
	}
}

func (s *run) computeLeg(i int) error {
	st := &s.stages[i]
	var leg transport.Leg

	if st.Label == recipe.StepSpinning {
		for _, m := range s.blend {
			inbound, err := s.leg(m.input.Country, st.Country, m.amount.Mass, 0, false, s.wk.RoadTransportPreMaking)
			if err != nil {
				return err
			}
			leg = leg.Plus(inbound)
		}
	}

	if i+1 < len(s.stages) && legStep(st.Label) {
		next := s.stages[i+1]
		var air unit.Ratio
		road := s.wk.RoadTransportPreMaking
		if st.Label == recipe.StepMaking {
			road = s.wk.RoadTransportPostMaking
			// Only the shipment to distribution may fly.
			if next.Label == recipe.StepDistribution {
				air = s.r.AirTransportRatio
			}
		}
		out, err := s.leg(st.Country, next.Country, next.InputMass, air, st.Label == recipe.StepEnnobling, road)
		if err != nil {
			return err
		}
		leg = leg.Plus(out)
	}

	leg.Impacts = impact.Recompute(leg.Impacts, s.db.Definitions())
	st.Transport = leg
	return nil
}

func (s *run) leg(from, to catalog.CountryCode, mass unit.Mass, air unit.Ratio, inland bool, road catalog.Process) (transport.Leg, error) {
	d, err := transport.Between(s.db, from, to)
	if err != nil {
		return transport.Leg{}, err
	}
	procs := transport.Processes{Road: road, Sea: s.wk.SeaTransport, Air: s.wk.AirTransport}
	return transport.Compute(mass, d, air, inland, procs), nil
}

func (s *run) result() *Result {
	defs := s.db.Definitions()
	res := &Result{
		Mass:       s.r.Mass,
		Stages:     s.stages,
		DaysOfWear: s.daysUse,
		UseCycles:  s.cycles,
	}
	var total impact.Vector
	for _, st := range s.stages {
		total = impact.Add(total, impact.Add(st.Impacts, st.Transport.Impacts))
		res.Transport = res.Transport.Plus(st.Transport)
	}
	res.Impacts = impact.Recompute(total, defs)
	res.Transport.Impacts = impact.Recompute(res.Transport.Impacts, defs)
	return res
}
