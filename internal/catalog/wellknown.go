package catalog

// WellKnown holds the processes the engine uses unconditionally. Every field
// is resolved by alias when a Snapshot is built.
type WellKnown struct {
	AirTransport            Process
	SeaTransport            Process
	RoadTransportPreMaking  Process
	RoadTransportPostMaking Process
	DistributionTransport   Process

	DyeingHigh          Process
	DyeingLow           Process
	DyeingToxicity      Process
	Bleaching           Process
	PrintingPigment     Process
	PrintingSubstantive Process
	Finishing           Process
	Fading              Process

	PassengerCar Process
	EndOfLife    Process

	Weaving                Process
	KnittingMix            Process
	KnittingCircular       Process
	KnittingStraight       Process
	KnittingIntegral       Process
	KnittingFullyFashioned Process
}

func (w *WellKnown) slots() []struct {
	alias Alias
	dst   *Process
} {
	return []struct {
		alias Alias
		dst   *Process
	}{
		{"airTransport", &w.AirTransport},
		{"seaTransport", &w.SeaTransport},
		{"roadTransportPreMaking", &w.RoadTransportPreMaking},
		{"roadTransportPostMaking", &w.RoadTransportPostMaking},
		{"distribution", &w.DistributionTransport},
		{"dyeingHigh", &w.DyeingHigh},
		{"dyeingLow", &w.DyeingLow},
		{"dyeingToxicity", &w.DyeingToxicity},
		{"bleaching", &w.Bleaching},
		{"printingPigment", &w.PrintingPigment},
		{"printingSubstantive", &w.PrintingSubstantive},
		{"finishing", &w.Finishing},
		{"fading", &w.Fading},
		{"passengerCar", &w.PassengerCar},
		{"endOfLife", &w.EndOfLife},
		{"weaving", &w.Weaving},
		{"knittingMix", &w.KnittingMix},
		{"knittingCircular", &w.KnittingCircular},
		{"knittingStraight", &w.KnittingStraight},
		{"knittingIntegral", &w.KnittingIntegral},
		{"knittingFullyFashioned", &w.KnittingFullyFashioned},
	}
}

// RequiredAliases lists the aliases a catalog must define.
func RequiredAliases() []Alias {
	var w WellKnown
	slots := w.slots()
	out := make([]Alias, len(slots))
	for i, s := range slots {
		out[i] = s.alias
	}
	return out
}

func resolveWellKnown(lookup func(Alias) (Process, error)) (WellKnown, error) {
	var w WellKnown
	for _, s := range w.slots() {
		p, err := lookup(s.alias)
		if err != nil {
			return WellKnown{}, configError(err, "resolving well-known process")
		}
		*s.dst = p
	}
	return w, nil
}

// FabricProcess returns the process for a fabric technique. Unknown values
// fall back to the knitting mix.
func (w WellKnown) FabricProcess(f Fabric) Process {
	switch f {
	case FabricWeaving:
		return w.Weaving
	case FabricKnittingCircular:
		return w.KnittingCircular
	case FabricKnittingStraight:
		return w.KnittingStraight
	case FabricKnittingIntegral:
		return w.KnittingIntegral
	case FabricKnittingFullyFashioned:
		return w.KnittingFullyFashioned
	default:
		return w.KnittingMix
	}
}
