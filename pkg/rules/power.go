package rules

import (
	"fmt"

	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/topology"
)

// Power runs P1-P3 (power-capacity) over a design.
func Power(d *design.Design, idx *topology.Index) []Issue {
	var issues []Issue
	issues = append(issues, p1BatteryRuntime(d)...)
	issues = append(issues, p2InverterCapacity(d, idx)...)
	issues = append(issues, p3SolarCoverage(d)...)
	return issues
}

// p1BatteryRuntime P1.
func p1BatteryRuntime(d *design.Design) []Issue {
	totalDCWatts := 0.0
	for i := range d.Components {
		if d.Components[i].Type == design.DCLoad {
			totalDCWatts += d.Components[i].Prop(design.PropWatts)
		}
	}
	if totalDCWatts <= 0 {
		return nil
	}

	usableWh := 0.0
	for i := range d.Components {
		c := &d.Components[i]
		if c.Type != design.Battery {
			continue
		}
		usableWh += c.Prop(design.PropCapacity) * d.SystemVoltage * c.DOD()
	}
	if usableWh <= 0 {
		return nil
	}

	hours := usableWh / totalDCWatts
	switch {
	case hours < 1:
		return []Issue{{
			Severity: Error,
			Category: CategoryPowerCap,
			Rule:     "P1",
			Message:  fmt.Sprintf("DC loads total %.0fW, draining usable battery capacity in %.2f hours", totalDCWatts, hours),
		}}
	case hours < 4:
		return []Issue{{
			Severity: Warning,
			Category: CategoryPowerCap,
			Rule:     "P1",
			Message:  fmt.Sprintf("DC loads total %.0fW, draining usable battery capacity in %.2f hours", totalDCWatts, hours),
		}}
	}
	return nil
}

// p2InverterCapacity P2.
func p2InverterCapacity(d *design.Design, idx *topology.Index) []Issue {
	totalACWatts := 0.0
	for i := range d.Components {
		if d.Components[i].Type == design.ACLoad {
			totalACWatts += topology.RatingWatts(&d.Components[i])
		}
	}
	if totalACWatts <= 0 {
		return nil
	}

	totalInverterWatts := 0.0
	haveInverter := false
	for i := range d.Components {
		if design.IsInverter(d.Components[i].Type) {
			haveInverter = true
			totalInverterWatts += topology.RatingWatts(&d.Components[i])
		}
	}

	if !haveInverter {
		return []Issue{{
			Severity: Error,
			Category: CategoryPowerCap,
			Rule:     "P2",
			Message:  fmt.Sprintf("ac loads total %.0fW but no inverter is present", totalACWatts),
		}}
	}

	switch {
	case totalACWatts > totalInverterWatts:
		return []Issue{{
			Severity: Error,
			Category: CategoryPowerCap,
			Rule:     "P2",
			Message:  fmt.Sprintf("ac loads total %.0fW, exceeding inverter capacity of %.0fW", totalACWatts, totalInverterWatts),
		}}
	case totalACWatts > 0.8*totalInverterWatts:
		return []Issue{{
			Severity: Warning,
			Category: CategoryPowerCap,
			Rule:     "P2",
			Message:  fmt.Sprintf("ac loads total %.0fW, within 80%% of inverter capacity of %.0fW", totalACWatts, totalInverterWatts),
		}}
	}
	return nil
}

// p3SolarCoverage P3.
func p3SolarCoverage(d *design.Design) []Issue {
	totalSolarWatts := 0.0
	haveSolar := false
	for i := range d.Components {
		if d.Components[i].Type == design.SolarPanel {
			haveSolar = true
			totalSolarWatts += d.Components[i].Prop(design.PropWatts)
		}
	}
	if !haveSolar {
		return nil
	}

	requiredWatts := 0.0
	for i := range d.Components {
		c := &d.Components[i]
		if c.Type != design.Battery {
			continue
		}
		requiredWatts += 0.5 * c.ChargeRateC() * c.Prop(design.PropCapacity) * d.SystemVoltage
	}
	if requiredWatts <= 0 {
		return nil
	}

	if totalSolarWatts < requiredWatts {
		return []Issue{{
			Severity: Warning,
			Category: CategoryPowerCap,
			Rule:     "P3",
			Message:  fmt.Sprintf("solar output %.0fW is below the recommended %.0fW for the installed battery bank", totalSolarWatts, requiredWatts),
		}}
	}
	return nil
}
