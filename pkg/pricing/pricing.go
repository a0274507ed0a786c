// Package pricing turns a print volume into a material cost breakdown.
package pricing

import (
	"fmt"
	"math"
)

// Material usage per cm³ of printed volume.
const (
	PowderKgPerCm3 = 0.002
	BinderMlPerCm3 = 0.27
	SilicaGPerCm3  = 0.55

	// Glaze usage is affine in volume: GlazeGPerCm3*v + GlazeBaseG.
	GlazeGPerCm3 = 0.1615
	GlazeBaseG   = 31.76
)

// Usage is the amount of each consumable needed for one object.
type Usage struct {
	PowderKg float64 `json:"powder_kg"`
	BinderMl float64 `json:"binder_ml"`
	SilicaG  float64 `json:"silica_g"`
	GlazeG   float64 `json:"glaze_g"`
}

// MaterialUsage computes consumable amounts for volumeCm3
func MaterialUsage(volumeCm3 float64) Usage {
	return Usage{
		PowderKg: volumeCm3 * PowderKgPerCm3,
		BinderMl: volumeCm3 * BinderMlPerCm3,
		SilicaG:  volumeCm3 * SilicaGPerCm3,
		GlazeG:   GlazeGPerCm3*volumeCm3 + GlazeBaseG,
	}
}

// Breakdown contains the material usage and the cost of every line item.
type Breakdown struct {
	Usage  Usage   `json:"usage"`
	Powder float64 `json:"powder"`
	Binder float64 `json:"binder"`
	Silica float64 `json:"silica"`
	Glaze  float64 `json:"glaze"`
	Total  float64 `json:"total"`
}

// Calculate computes the cost of printing volumeCm3 at the given prices.
// The glaze line is zero unless includeGlaze is set. A negative volume is a
// programming error and panics.
func Calculate(volumeCm3 float64, prices Prices, includeGlaze bool) Breakdown {
	if volumeCm3 < 0 || math.IsNaN(volumeCm3) {
		panic(fmt.Sprintf("pricing: invalid volume %v", volumeCm3))
	}

	usage := MaterialUsage(volumeCm3)
	b := Breakdown{
		Usage:  usage,
		Powder: usage.PowderKg * prices.Powder,
		Binder: usage.BinderMl * prices.Binder,
		Silica: usage.SilicaG * prices.Silica,
	}
	if includeGlaze {
		b.Glaze = usage.GlazeG * prices.Glaze
	}
	b.Total = b.Powder + b.Binder + b.Silica + b.Glaze
	return b
}

// Item is one named line of a breakdown.
type Item struct {
	Name  string  `json:"name"`
	Cost  float64 `json:"cost"`
	Share float64 `json:"share"` // percent of the total
}

// Items returns the non-zero cost lines in display order
func (b Breakdown) Items() []Item {
	lines := []Item{
		{Name: "Powder", Cost: b.Powder},
		{Name: "Binder", Cost: b.Binder},
		{Name: "Silica", Cost: b.Silica},
		{Name: "Glaze", Cost: b.Glaze},
	}

	items := make([]Item, 0, len(lines))
	for _, it := range lines {
		if it.Cost <= 0 {
			continue
		}
		if b.Total > 0 {
			it.Share = it.Cost / b.Total * 100
		}
		items = append(items, it)
	}
	return items
}
