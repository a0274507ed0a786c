package estimate

import (
	"fmt"
	"math"

	"github.com/philipparndt/powdercalc/pkg/orientation"
	"github.com/philipparndt/powdercalc/pkg/pricing"
)

// FormatPrintTime renders seconds as "3h 25m", or "25m" below one hour
func FormatPrintTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		return "N/A"
	}
	hours := int(seconds / 3600)
	minutes := int(math.Mod(seconds, 3600) / 60)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatMoney renders v with the symbol of c and two decimals
func FormatMoney(c pricing.Currency, v float64) string {
	return c.Format(v)
}

// PrintTime returns the formatted bed print time, "N/A" when the object
// does not fit
func (p PrinterReport) PrintTime() string {
	if !p.Packing.FitsInPrinter {
		return "N/A"
	}
	return FormatPrintTime(p.Packing.PrintTime)
}

// Warnings lists caveats a reader of the report should see
func (r *Report) Warnings() []string {
	var warnings []string
	if r.Orientation.Type == orientation.Vertical && r.Orientation.Vertical.Scaled {
		warnings = append(warnings, fmt.Sprintf(
			"vertical layout exceeds the tallest build height; footprint scaled down to %.1f × %.1f mm",
			r.Orientation.Vertical.Width, r.Orientation.Vertical.Depth))
	}
	for _, p := range r.Printers {
		if !p.Packing.FitsInPrinter {
			warnings = append(warnings, fmt.Sprintf("object exceeds %s capacity (max %gmm × %gmm × %gmm)",
				p.Profile.Name, p.Profile.Width, p.Profile.Depth, p.Profile.Height))
		}
	}
	return warnings
}
