package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/philipparndt/powdercalc/pkg/estimate"
	"github.com/philipparndt/powdercalc/pkg/orientation"
)

func printReport(w io.Writer, r *estimate.Report) {
	title := "Manual Estimate"
	if r.Source == estimate.SourceSTL {
		title = "Estimate: " + r.Name
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, underline(title))

	if r.Source == estimate.SourceSTL {
		fmt.Fprintf(w, "Triangles: %s\n", humanize.Comma(int64(r.Triangles)))
	}
	fmt.Fprintf(w, "Volume: %.2f cm³\n", r.VolumeCm3)
	fmt.Fprintf(w, "Dimensions: %s mm\n\n", r.Extents)

	fmt.Fprintln(w, "Orientation:")
	for _, t := range []orientation.Type{orientation.Flat, orientation.Vertical} {
		c := r.Orientation.With(t).Active()
		marker := " "
		if t == r.Orientation.Type {
			marker = "*"
		}
		note := ""
		if c.Scaled {
			note = " (scaled)"
		}
		fmt.Fprintf(w, "  %s %-8s %s mm, %s%s\n", marker, t, c.Extents(), estimate.FormatPrintTime(c.PrintTime), note)
	}

	u := r.Cost.Usage
	fmt.Fprintf(w, "\nMaterials (%s):\n", r.Currency)
	fmt.Fprintf(w, "  Powder: %.3f kg\n", u.PowderKg)
	fmt.Fprintf(w, "  Binder: %.2f ml\n", u.BinderMl)
	fmt.Fprintf(w, "  Silica: %.2f g\n", u.SilicaG)
	fmt.Fprintf(w, "  Glaze:  %.2f g\n", u.GlazeG)

	fmt.Fprintln(w, "\nCost:")
	for _, item := range r.Cost.Items() {
		fmt.Fprintf(w, "  %-7s %10s  %5.1f%%\n", item.Name+":", estimate.FormatMoney(r.Currency, item.Cost), item.Share)
	}
	fmt.Fprintf(w, "  %-7s %10s\n", "Total:", estimate.FormatMoney(r.Currency, r.Cost.Total))

	for _, p := range r.Printers {
		fmt.Fprintf(w, "\n%s (%g × %g × %g mm):\n", p.Profile.Name, p.Profile.Width, p.Profile.Depth, p.Profile.Height)
		if !p.Packing.FitsInPrinter {
			fmt.Fprintf(w, "  Does not fit (arrangement %s)\n", p.Packing.Arrangement)
			continue
		}
		rotated := ""
		if p.Packing.Rotated {
			rotated = ", rotated 90°"
		}
		fmt.Fprintf(w, "  Arrangement: %s%s\n", p.Packing.Arrangement, rotated)
		fmt.Fprintf(w, "  Objects per batch: %s\n", humanize.Comma(int64(p.Packing.TotalObjects)))
		fmt.Fprintf(w, "  Batch height: %.1f mm\n", p.Packing.TotalHeight)
		fmt.Fprintf(w, "  Print time: %s\n", p.PrintTime())
		fmt.Fprintf(w, "  Batch cost: %s\n", estimate.FormatMoney(r.Currency, p.BatchCost))
	}

	if warnings := r.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(w)
		for _, warning := range warnings {
			fmt.Fprintf(w, "Warning: %s\n", warning)
		}
	}
}

func underline(s string) string {
	return strings.Repeat("=", utf8.RuneCountInString(s))
}
