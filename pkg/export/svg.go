package export

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/engine"
	"github.com/dshills/elecval/pkg/rules"
)

// SVGOptions configures wiring-diagram export.
type SVGOptions struct {
	Width         int    // Canvas width in pixels
	Height        int    // Canvas height in pixels
	ShowLabels    bool   // Show component ID labels
	ShowWireAmps  bool   // Annotate wires with their computed current
	ShowIssues    bool   // Ring components referenced by error/warning issues
	ShowLegend    bool   // Show legend explaining colors
	ComponentSize int    // Half-width of a component footprint box (default: 40)
	Title         string // Optional title
	ShowScore     bool   // Show the quality score in the header
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:         2000,
		Height:        1500,
		ShowLabels:    true,
		ShowWireAmps:  true,
		ShowIssues:    true,
		ShowLegend:    true,
		ComponentSize: 40,
		Title:         "Electrical Design",
		ShowScore:     true,
	}
}

// ExportSVG renders a design and its validation result as a wiring
// diagram, in the design's own X/Y layout coordinates.
func ExportSVG(r *Report, opts SVGOptions) ([]byte, error) {
	if r == nil || r.Design == nil {
		return nil, fmt.Errorf("export: report must contain a design")
	}
	if opts.Width <= 0 {
		opts.Width = 2000
	}
	if opts.Height <= 0 {
		opts.Height = 1500
	}
	if opts.ComponentSize <= 0 {
		opts.ComponentSize = 40
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	errored, warned := issueComponentSets(r.Result)

	drawWires(canvas, r, opts)
	drawComponents(canvas, r.Design, opts, errored, warned)

	if opts.ShowLegend {
		drawSVGLegend(canvas, opts)
	}
	if opts.Title != "" || opts.ShowScore {
		drawSVGHeader(canvas, r, opts)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders a report to an SVG file with 0644 permissions.
func SaveSVGToFile(r *Report, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(r, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// issueComponentSets partitions referenced component IDs by the worst
// severity of any issue that names them.
func issueComponentSets(result *engine.ValidationResult) (errored, warned map[string]bool) {
	errored = make(map[string]bool)
	warned = make(map[string]bool)
	if result == nil {
		return errored, warned
	}
	for _, iss := range result.Issues {
		for _, id := range iss.ComponentIDs {
			switch iss.Severity {
			case rules.Error:
				errored[id] = true
			case rules.Warning:
				warned[id] = true
			}
		}
	}
	return errored, warned
}

func drawWires(canvas *svg.SVG, r *Report, opts SVGOptions) {
	wireIDs := make([]string, 0, len(r.Design.Wires))
	byID := make(map[string]design.Wire, len(r.Design.Wires))
	for _, w := range r.Design.Wires {
		wireIDs = append(wireIDs, w.ID)
		byID[w.ID] = w
	}
	sort.Strings(wireIDs)

	compByID := make(map[string]design.Component, len(r.Design.Components))
	for _, c := range r.Design.Components {
		compByID[c.ID] = c
	}

	for _, id := range wireIDs {
		w := byID[id]
		from, fromOK := compByID[w.FromComponentID]
		to, toOK := compByID[w.ToComponentID]
		if !fromOK || !toOK {
			continue
		}
		fx, fy := componentCenter(from, opts)
		tx, ty := componentCenter(to, opts)

		color := wireColor(w.Polarity)
		canvas.Line(int(fx), int(fy), int(tx), int(ty),
			fmt.Sprintf("stroke:%s;stroke-width:3;opacity:0.85", color))

		if opts.ShowWireAmps && r.Result != nil {
			if outcome, ok := r.Result.Wires[w.ID]; ok {
				midX, midY := (fx+tx)/2, (fy+ty)/2
				canvas.Text(int(midX), int(midY)-6,
					fmt.Sprintf("%.1fA %s", outcome.Amps, outcome.RecommendedGauge),
					"text-anchor:middle;font-size:10px;font-family:monospace;fill:#cbd5e0")
			}
		}
	}
}

func wireColor(p design.WirePolarity) string {
	switch p {
	case design.PolarityPositive:
		return "#f56565"
	case design.PolarityNegative:
		return "#4a5568"
	case design.PolarityGround:
		return "#48bb78"
	case design.PolarityHot:
		return "#ed8936"
	case design.PolarityNeutral:
		return "#4299e1"
	default:
		return "#a0aec0"
	}
}

func componentCenter(c design.Component, opts SVGOptions) (float64, float64) {
	half := float64(opts.ComponentSize)
	return c.X + half, c.Y + half/1.5
}

func drawComponents(canvas *svg.SVG, d *design.Design, opts SVGOptions, errored, warned map[string]bool) {
	ids := make([]string, 0, len(d.Components))
	byID := make(map[string]design.Component, len(d.Components))
	for _, c := range d.Components {
		ids = append(ids, c.ID)
		byID[c.ID] = c
	}
	sort.Strings(ids)

	size := opts.ComponentSize
	for _, id := range ids {
		c := byID[id]
		color := componentColor(c.Type)
		canvas.Rect(int(c.X), int(c.Y), size*2, int(float64(size)*1.5),
			fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:2;opacity:0.9;rx:4", color))

		if opts.ShowIssues {
			cx, cy := componentCenter(c, opts)
			switch {
			case errored[c.ID]:
				canvas.Circle(int(cx), int(cy), size+8, "fill:none;stroke:#f56565;stroke-width:2;stroke-dasharray:4,4")
			case warned[c.ID]:
				canvas.Circle(int(cx), int(cy), size+8, "fill:none;stroke:#ecc94b;stroke-width:2;stroke-dasharray:4,4")
			}
		}

		if opts.ShowLabels {
			canvas.Text(int(c.X)+size, int(c.Y)+2*size+14, id,
				"text-anchor:middle;font-size:11px;font-family:monospace;fill:#e2e8f0;font-weight:500")
		}
	}
}

func componentColor(t design.ComponentType) string {
	switch {
	case t == design.Battery:
		return "#48bb78"
	case t == design.SolarPanel:
		return "#ecc94b"
	case design.IsCharger(t):
		return "#4299e1"
	case design.IsInverter(t):
		return "#9f7aea"
	case design.IsBusbar(t):
		return "#718096"
	case t == design.Fuse || t == design.Switch:
		return "#ed8936"
	case t == design.DCLoad || t == design.ACLoad:
		return "#f56565"
	case t == design.DCPanel || t == design.ACPanel:
		return "#2d3748"
	default:
		return "#4a5568"
	}
}

func drawSVGLegend(canvas *svg.SVG, opts SVGOptions) {
	legendX := opts.Width - 220
	legendY := 80

	canvas.Rect(legendX-10, legendY-15, 210, 210,
		"fill:#2d3748;stroke:#4a5568;stroke-width:1;opacity:0.95;rx:5")
	canvas.Text(legendX, legendY, "Components", "font-size:14px;font-weight:bold;fill:#e2e8f0")
	legendY += 25

	entries := []struct {
		name  string
		color string
	}{
		{"Battery", "#48bb78"},
		{"Solar panel", "#ecc94b"},
		{"Charger", "#4299e1"},
		{"Inverter", "#9f7aea"},
		{"Bus bar", "#718096"},
		{"Fuse/switch", "#ed8936"},
		{"Load", "#f56565"},
		{"Panel", "#2d3748"},
	}
	for _, e := range entries {
		canvas.Rect(legendX, legendY-10, 16, 16, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", e.color))
		canvas.Text(legendX+24, legendY+2, e.name, "font-size:11px;fill:#cbd5e0")
		legendY += 20
	}
}

func drawSVGHeader(canvas *svg.SVG, r *Report, opts SVGOptions) {
	headerY := 25
	if opts.Title != "" {
		canvas.Text(opts.Width/2, headerY, opts.Title,
			"text-anchor:middle;font-size:20px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
		headerY += 28
	}
	if opts.ShowScore && r.Result != nil {
		summary := fmt.Sprintf("Score: %.1f | Errors: %d | Warnings: %d",
			r.Result.Score, countSeverity(r.Result.Issues, rules.Error), countSeverity(r.Result.Issues, rules.Warning))
		canvas.Text(opts.Width/2, headerY, summary,
			"text-anchor:middle;font-size:12px;fill:#a0aec0;font-family:monospace")
	}
}

func countSeverity(issues []rules.Issue, sev rules.Severity) int {
	n := 0
	for _, iss := range issues {
		if iss.Severity == sev {
			n++
		}
	}
	return n
}
