package rules

import (
	"fmt"
	"math"

	"github.com/dshills/elecval/pkg/design"
)

// Component footprints are not part of the data model ( gives
// only a placement point), so every component is treated as sharing one
// canvas footprint for overlap and spacing purposes.
const (
	componentWidth  = 80.0
	componentHeight = 60.0

	canvasMaxX = 2000.0
	canvasMaxY = 1500.0
)

// LayoutMetrics carries the aggregate spacing figures the quality score
// needs.
type LayoutMetrics struct {
	Overlaps    int
	NearEdge    int
	AvgSpacing  float64
}

// Layout runs L1-L3 over a design and returns both the issues and the
// aggregate metrics the quality score consumes.
func Layout(d *design.Design) ([]Issue, LayoutMetrics) {
	var issues []Issue
	var metrics LayoutMetrics

	n := len(d.Components)
	for i := 0; i < n; i++ {
		a := &d.Components[i]
		ax0, ay0, ax1, ay1 := bounds(a)

		if ax0 < 50 || ay0 < 50 || ax1 > canvasMaxX-50 || ay1 > canvasMaxY-50 || ax1 > canvasMaxX || ay1 > canvasMaxY {
			metrics.NearEdge++
			issues = append(issues, Issue{
				Severity:     Warning,
				Category:     CategoryLayout,
				Rule:         "L3",
				Message:      fmt.Sprintf("%s %s is too close to the canvas edge or past canvas bounds", a.Type, a.ID),
				ComponentIDs: []string{a.ID},
			})
		}

		for j := i + 1; j < n; j++ {
			b := &d.Components[j]
			if overlaps(a, b) {
				metrics.Overlaps++
				issues = append(issues, Issue{
					Severity:     Error,
					Category:     CategoryLayout,
					Rule:         "L1",
					Message:      fmt.Sprintf("%s %s overlaps %s %s", a.Type, a.ID, b.Type, b.ID),
					ComponentIDs: []string{a.ID, b.ID},
				})
				continue
			}

			if dist := distance(a, b); dist < 150 {
				issues = append(issues, Issue{
					Severity:     Warning,
					Category:     CategoryLayout,
					Rule:         "L2",
					Message:      fmt.Sprintf("%s %s and %s %s are closer than 150px", a.Type, a.ID, b.Type, b.ID),
					ComponentIDs: []string{a.ID, b.ID},
				})
			}
		}
	}

	metrics.AvgSpacing = averageSpacing(d.Components)
	return issues, metrics
}

func bounds(c *design.Component) (minX, minY, maxX, maxY float64) {
	return c.X, c.Y, c.X + componentWidth, c.Y + componentHeight
}

func overlaps(a, b *design.Component) bool {
	ax0, ay0, ax1, ay1 := bounds(a)
	bx0, by0, bx1, by1 := bounds(b)
	if ax1 <= bx0 || bx1 <= ax0 {
		return false
	}
	if ay1 <= by0 || by1 <= ay0 {
		return false
	}
	return true
}

func center(c *design.Component) (float64, float64) {
	return c.X + componentWidth/2, c.Y + componentHeight/2
}

func distance(a, b *design.Component) float64 {
	ax, ay := center(a)
	bx, by := center(b)
	return math.Hypot(ax-bx, ay-by)
}

// averageSpacing returns the average nearest-neighbor center distance
// across all components, used by the quality score's layout-efficiency
// term.
func averageSpacing(components []design.Component) float64 {
	if len(components) < 2 {
		return 150
	}
	total := 0.0
	for i := range components {
		nearest := math.MaxFloat64
		for j := range components {
			if i == j {
				continue
			}
			if d := distance(&components[i], &components[j]); d < nearest {
				nearest = d
			}
		}
		total += nearest
	}
	return total / float64(len(components))
}
