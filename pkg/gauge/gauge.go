package gauge

import (
	"fmt"
	"strconv"
	"strings"
)

// Size identifies a standard conductor size, smallest to largest.
type Size int

const (
	AWG18 Size = iota
	AWG16
	AWG14
	AWG12
	AWG10
	AWG8
	AWG6
	AWG4
	AWG2
	AWG1
	AWG1_0
	AWG2_0
	AWG3_0
	AWG4_0
)

// Ordered is every standard size, smallest to largest. Index order is
// authoritative: all sizing routines walk this slice front to back.
var Ordered = []Size{
	AWG18, AWG16, AWG14, AWG12, AWG10, AWG8, AWG6, AWG4, AWG2, AWG1,
	AWG1_0, AWG2_0, AWG3_0, AWG4_0,
}

// String returns the canonical label for a size, e.g. "12" or "1/0".
func (s Size) String() string {
	if t, ok := tables[s]; ok {
		return t.label
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

type table struct {
	label           string
	resistanceOhms  float64 // ohms per 1000 ft at 75C, copper
	ampacity60      float64
	ampacity75      float64
	ampacity90      float64
}

// tables holds the authoritative NEC-table ampacity and resistance values
// per conductor size. 90C ampacity is derived as 1.15x the 75C column
// (the engine only consults 60C/75C in practice, but the field is
// carried for completeness of the insulation dimension).
var tables = map[Size]table{
	AWG18:  {"18", 6.385, 10, 14, 16},
	AWG16:  {"16", 4.016, 13, 18, 21},
	AWG14:  {"14", 2.525, 15, 20, 23},
	AWG12:  {"12", 1.588, 20, 25, 29},
	AWG10:  {"10", 0.9989, 30, 35, 40},
	AWG8:   {"8", 0.6282, 40, 50, 57},
	AWG6:   {"6", 0.3951, 55, 65, 75},
	AWG4:   {"4", 0.2485, 70, 85, 97},
	AWG2:   {"2", 0.1563, 95, 115, 132},
	AWG1:   {"1", 0.1240, 110, 130, 150},
	AWG1_0: {"1/0", 0.0983, 125, 150, 172},
	AWG2_0: {"2/0", 0.0779, 145, 175, 201},
	AWG3_0: {"3/0", 0.0618, 165, 200, 230},
	AWG4_0: {"4/0", 0.0490, 195, 230, 264},
}

// ResistancePerKft returns ohms per 1000 ft at 75C for copper.
func ResistancePerKft(s Size) float64 {
	return tables[s].resistanceOhms
}

// Insulation identifies the insulation temperature rating used to select an
// ampacity column.
type Insulation int

const (
	Insulation60C Insulation = iota
	Insulation75C
	Insulation90C
)

// BaseAmpacity returns the un-derated ampacity for a size at the given
// insulation rating.
func BaseAmpacity(s Size, ins Insulation) float64 {
	t := tables[s]
	switch ins {
	case Insulation60C:
		return t.ampacity60
	case Insulation90C:
		return t.ampacity90
	default:
		return t.ampacity75
	}
}

// Largest is the biggest standard size, used as the terminal fallback when
// no size satisfies sizing constraints.
const Largest = AWG4_0

// Normalize canonicalizes a free-form gauge string into a Size.
// It accepts "10", "10 AWG", "1/0", "1/0 AWG", and repeated " AWG" suffixes
// (" AWG AWG" -> " AWG"), trimming whitespace and case before matching.
// Returns an error for anything that doesn't resolve to a known size.
func Normalize(raw string) (Size, error) {
	s := strings.TrimSpace(raw)
	s = strings.ToUpper(s)
	for {
		trimmed := strings.TrimSpace(strings.TrimSuffix(s, "AWG"))
		if trimmed == s {
			break
		}
		s = trimmed
	}
	s = strings.TrimSpace(s)

	for size, t := range tables {
		if strings.EqualFold(t.label, s) {
			return size, nil
		}
	}

	// Accept bare numeric forms that match a label without the slash
	// notation, e.g. "1/0" typed as "10" would collide with AWG10 - we do
	// not special-case that; it is treated as AWG10 intentionally since
	// that is the literal string match a caller would expect.
	if n, err := strconv.Atoi(s); err == nil {
		for size, t := range tables {
			if t.label == strconv.Itoa(n) {
				return size, nil
			}
		}
	}

	return 0, fmt.Errorf("gauge: unknown size %q", raw)
}
