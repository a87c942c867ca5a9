package impact

import (
	"fmt"
)

// Code identifies one environmental impact category. The set is closed: every
// Vector holds exactly one value per Code.
type Code int

// Impact categories of the Environmental Footprint 3.1 method, followed by the
// two composite scores derived from them.
const (
	Acd  Code = iota // acidification
	Cch              // climate change
	Etf              // freshwater ecotoxicity
	EtfC             // freshwater ecotoxicity, corrected
	Fru              // fossil resource use
	Fwe              // freshwater eutrophication
	Htc              // human toxicity, cancer
	HtcC             // human toxicity, cancer, corrected
	Htn              // human toxicity, non-cancer
	HtnC             // human toxicity, non-cancer, corrected
	Ior              // ionising radiation
	Ldu              // land use
	Mru              // minerals and metals resource use
	Ozd              // ozone depletion
	Pco              // photochemical ozone formation
	Pma              // particulate matter
	Swe              // marine eutrophication
	Tre              // terrestrial eutrophication
	Wtu              // water use
	Pef              // PEF single score (composite)
	Ecs              // Ecoscore (composite)

	// NumCodes is the number of impact codes.
	NumCodes = int(Ecs) + 1
)

//nolint:gochecknoglobals // Static lookup table for the closed Code enumeration.
var trigrams = [NumCodes]string{
	Acd:  "acd",
	Cch:  "cch",
	Etf:  "etf",
	EtfC: "etf-c",
	Fru:  "fru",
	Fwe:  "fwe",
	Htc:  "htc",
	HtcC: "htc-c",
	Htn:  "htn",
	HtnC: "htn-c",
	Ior:  "ior",
	Ldu:  "ldu",
	Mru:  "mru",
	Ozd:  "ozd",
	Pco:  "pco",
	Pma:  "pma",
	Swe:  "swe",
	Tre:  "tre",
	Wtu:  "wtu",
	Pef:  "pef",
	Ecs:  "ecs",
}

// Codes returns every impact code in declaration order.
func Codes() []Code {
	codes := make([]Code, NumCodes)
	for i := range codes {
		codes[i] = Code(i)
	}
	return codes
}

// ParseCode returns the Code for a trigram such as "cch" or "etf-c".
func ParseCode(trigram string) (Code, error) {
	for i, t := range trigrams {
		if t == trigram {
			return Code(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCode, trigram)
}

// Valid reports whether c is one of the declared codes.
func (c Code) Valid() bool { return c >= 0 && int(c) < NumCodes }

// IsComposite reports whether c is a derived score (PEF or Ecoscore).
func (c Code) IsComposite() bool { return c == Pef || c == Ecs }

// String returns the trigram of c.
func (c Code) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Code(%d)", int(c))
	}
	return trigrams[c]
}

// MarshalText encodes c as its trigram.
func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCode, int(c))
	}
	return []byte(trigrams[c]), nil
}

// UnmarshalText decodes a trigram into c.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
