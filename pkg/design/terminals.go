package design

// Terminal describes one named connection point on a component type.
type Terminal struct {
	ID          string
	Class       TerminalClass
	Orientation string // free-form layout hint: "top", "bottom", "left", "right"
	// Multi marks a terminal that legitimately accepts more than one wire,
	// e.g. a bus bar's single stud or a panel's feed lug. Single-wire
	// terminals that see a second wire are a T4 violation.
	Multi bool
}

// terminalTables is the fixed, per-type terminal list. Types not present
// here have no terminal contract: electrical rules skip them, while T1
// flags every wire that lands on one, since none of its terminals is known.
var terminalTables = map[ComponentType][]Terminal{
	Battery: {
		{ID: "positive", Class: ClassPositive, Orientation: "right"},
		{ID: "negative", Class: ClassNegative, Orientation: "left"},
	},
	SolarPanel: {
		{ID: "pv-positive", Class: ClassPVPositive, Orientation: "right"},
		{ID: "pv-negative", Class: ClassPVNegative, Orientation: "left"},
	},
	MPPT: {
		{ID: "pv-positive", Class: ClassPVPositive, Orientation: "top"},
		{ID: "pv-negative", Class: ClassPVNegative, Orientation: "top"},
		{ID: "dc-positive", Class: ClassPositive, Orientation: "bottom"},
		{ID: "dc-negative", Class: ClassNegative, Orientation: "bottom"},
	},
	BlueSmartCharger: {
		{ID: "ac-in-hot", Class: ClassACIn, Orientation: "top"},
		{ID: "ac-in-neutral", Class: ClassACIn, Orientation: "top"},
		{ID: "dc-positive", Class: ClassPositive, Orientation: "bottom"},
		{ID: "dc-negative", Class: ClassNegative, Orientation: "bottom"},
	},
	OrionDCDC: {
		{ID: "dc-in-positive", Class: ClassPositive, Orientation: "top"},
		{ID: "dc-in-negative", Class: ClassNegative, Orientation: "top"},
		{ID: "dc-positive", Class: ClassPositive, Orientation: "bottom"},
		{ID: "dc-negative", Class: ClassNegative, Orientation: "bottom"},
	},
	Multiplus: {
		{ID: "ac-in-hot", Class: ClassACIn, Orientation: "top"},
		{ID: "ac-in-neutral", Class: ClassACIn, Orientation: "top"},
		{ID: "ac-out-hot", Class: ClassACOut, Orientation: "top"},
		{ID: "ac-out-neutral", Class: ClassACOut, Orientation: "top"},
		{ID: "dc-positive", Class: ClassPositive, Orientation: "bottom"},
		{ID: "dc-negative", Class: ClassNegative, Orientation: "bottom"},
	},
	PhoenixInverter: {
		{ID: "ac-out-hot", Class: ClassACOut, Orientation: "top"},
		{ID: "ac-out-neutral", Class: ClassACOut, Orientation: "top"},
		{ID: "dc-positive", Class: ClassPositive, Orientation: "bottom"},
		{ID: "dc-negative", Class: ClassNegative, Orientation: "bottom"},
	},
	Inverter: {
		{ID: "ac-out-hot", Class: ClassACOut, Orientation: "top"},
		{ID: "ac-out-neutral", Class: ClassACOut, Orientation: "top"},
		{ID: "dc-positive", Class: ClassPositive, Orientation: "bottom"},
		{ID: "dc-negative", Class: ClassNegative, Orientation: "bottom"},
	},
	BatteryProtect: {
		{ID: "in", Class: ClassPositive, Orientation: "left"},
		{ID: "out", Class: ClassPositive, Orientation: "right"},
	},
	SmartShunt: {
		{ID: "negative", Class: ClassNegative, Orientation: "left"},       // battery side
		{ID: "system-minus", Class: ClassNegative, Orientation: "right"}, // load/charger side
		{ID: "data", Class: ClassData, Orientation: "top"},
	},
	Cerbo: {
		{ID: "data", Class: ClassData, Orientation: "top", Multi: true},
	},
	BMV: {
		{ID: "data", Class: ClassData, Orientation: "top"},
	},
	BusbarPositive: {
		{ID: "bus", Class: ClassPositive, Orientation: "center", Multi: true},
	},
	BusbarNegative: {
		{ID: "bus", Class: ClassNegative, Orientation: "center", Multi: true},
	},
	ACPanel: {
		{ID: "hot", Class: ClassACOut, Orientation: "center", Multi: true},
		{ID: "neutral", Class: ClassACOut, Orientation: "center", Multi: true},
		{ID: "ground", Class: ClassGround, Orientation: "center", Multi: true},
	},
	DCPanel: {
		{ID: "positive", Class: ClassPositive, Orientation: "center", Multi: true},
		{ID: "negative", Class: ClassNegative, Orientation: "center", Multi: true},
	},
	Fuse: {
		{ID: "in", Class: ClassPositive, Orientation: "left"},
		{ID: "out", Class: ClassPositive, Orientation: "right"},
	},
	Switch: {
		{ID: "in", Class: ClassPositive, Orientation: "left"},
		{ID: "out", Class: ClassPositive, Orientation: "right"},
	},
	ACLoad: {
		{ID: "hot", Class: ClassACIn, Orientation: "top"},
		{ID: "neutral", Class: ClassACIn, Orientation: "top"},
		{ID: "ground", Class: ClassGround, Orientation: "top"},
	},
	DCLoad: {
		{ID: "positive", Class: ClassPositive, Orientation: "top"},
		{ID: "negative", Class: ClassNegative, Orientation: "top"},
	},
	ShorePower: {
		{ID: "ac-out-hot", Class: ClassACOut, Orientation: "bottom"},
		{ID: "ac-out-neutral", Class: ClassACOut, Orientation: "bottom"},
		{ID: "ac-out-ground", Class: ClassGround, Orientation: "bottom"},
	},
	Alternator: {
		{ID: "dc-positive", Class: ClassPositive, Orientation: "bottom"},
		{ID: "dc-negative", Class: ClassNegative, Orientation: "bottom"},
	},
	TransferSwitch: {
		{ID: "in-1-hot", Class: ClassACIn, Orientation: "top"},
		{ID: "in-2-hot", Class: ClassACIn, Orientation: "top"},
		{ID: "neutral", Class: ClassACIn, Orientation: "top", Multi: true},
		{ID: "out-hot", Class: ClassACOut, Orientation: "bottom"},
	},
}

// Terminals returns the fixed terminal list for a component type, or nil
// if the type is unknown (a closed set).
func Terminals(t ComponentType) []Terminal {
	return terminalTables[t]
}

// TerminalByID looks up one terminal definition by ID on a component type.
func TerminalByID(t ComponentType, terminalID string) (Terminal, bool) {
	for _, term := range terminalTables[t] {
		if term.ID == terminalID {
			return term, true
		}
	}
	return Terminal{}, false
}

// KnownType reports whether a component type is in the closed tag set.
func KnownType(t ComponentType) bool {
	_, ok := terminalTables[t]
	return ok
}

// IsBusbar reports whether a component type is one of the bus-bar types.
func IsBusbar(t ComponentType) bool {
	return t == BusbarPositive || t == BusbarNegative
}

// IsInverter reports whether a component type has AC-output/DC-input
// inverter semantics.
func IsInverter(t ComponentType) bool {
	return t == Multiplus || t == PhoenixInverter || t == Inverter
}

// IsCharger reports whether a component type is a DC source that charges
// a battery bank.
func IsCharger(t ComponentType) bool {
	return t == MPPT || t == BlueSmartCharger || t == OrionDCDC || t == Alternator
}
