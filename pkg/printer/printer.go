// Package printer defines the fixed powder-bed printer envelopes.
package printer

import (
	"fmt"
	"math"
	"strings"
)

// LayerHeight is the height of one printed layer in mm.
const LayerHeight = 0.1

// Profile is the usable bed envelope of a printer and its time per layer.
type Profile struct {
	Name      string  `json:"name" yaml:"name"`
	Width     float64 `json:"width" yaml:"width"`
	Depth     float64 `json:"depth" yaml:"depth"`
	Height    float64 `json:"height" yaml:"height"`
	LayerTime float64 `json:"layer_time_seconds" yaml:"layer_time_seconds"`
}

var (
	// Printer400 is the small bed: 390×290×200 mm, 45 s per layer.
	Printer400 = Profile{Name: "Printer 400", Width: 390, Depth: 290, Height: 200, LayerTime: 45}
	// Printer600 is the large bed: 595×600×250 mm, 35 s per layer.
	Printer600 = Profile{Name: "Printer 600", Width: 595, Depth: 600, Height: 250, LayerTime: 35}
)

// All returns the built-in profiles, smallest first
func All() []Profile {
	return []Profile{Printer400, Printer600}
}

// Lookup finds a built-in profile by name, ignoring case and spaces
func Lookup(name string) (Profile, error) {
	key := normalize(name)
	for _, p := range All() {
		if normalize(p.Name) == key {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown printer %q", name)
}

func normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

// Tallest returns the profile with the greatest build height.
// The first one wins on ties; ok is false for an empty list.
func Tallest(profiles []Profile) (p Profile, ok bool) {
	for i, candidate := range profiles {
		if i == 0 || candidate.Height > p.Height {
			p = candidate
		}
	}
	return p, len(profiles) > 0
}

// Layers returns the number of layers needed to print height mm
func Layers(height float64) int {
	if height <= 0 {
		return 0
	}
	return int(math.Ceil(height / LayerHeight))
}

// PrintTime returns the seconds needed to print height mm at layerTime
// seconds per layer
func PrintTime(height, layerTime float64) float64 {
	return float64(Layers(height)) * layerTime
}

func (p Profile) String() string {
	return fmt.Sprintf("%s (%gmm × %gmm × %gmm)", p.Name, p.Width, p.Depth, p.Height)
}
