package raman

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const ruleWidth = 60

// RenderResults formats the fitted parameters as a text report
func (f *Fitter) RenderResults() string {
	if f.fitted == nil {
		return "No fit available."
	}
	return RenderParams(f.fitted)
}

// RenderParams formats p as the fit report, one block per peak
func RenderParams(p *Params) string {
	rule := strings.Repeat("=", ruleWidth)
	lines := []string{rule, fmt.Sprintf("Fitting Results (%d peaks)", len(p.Peaks)), rule}

	for i, pk := range p.Peaks {
		lines = append(lines,
			fmt.Sprintf("\nPeak %d:", i+1),
			field("Position:", 11, fmt.Sprintf("%.2f cm⁻¹", pk.Position)),
			field("Height:", 11, fmt.Sprintf("%.4f", pk.Height)),
			field("Width:", 11, fmt.Sprintf("%.4f cm⁻¹", pk.Width)),
			field("Integral:", 11, fmt.Sprintf("%.4f", pk.Integral())),
		)
	}
	if bg := p.Background; bg != nil {
		lines = append(lines,
			"\nBackground (linear):",
			field("Offset:", 8, fmt.Sprintf("%.4f", bg.Offset)),
			field("Slope:", 8, fmt.Sprintf("%.6f", bg.Slope)),
		)
	}
	lines = append(lines, rule)
	return strings.Join(lines, "\n")
}

func field(label string, width int, value string) string {
	return "  " + runewidth.FillRight(label, width) + value
}
