// Package estimate runs the full pipeline from an STL buffer, or from
// manually entered dimensions, to a cost and packing report per printer.
package estimate

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/powdercalc/pkg/analysis"
	"github.com/philipparndt/powdercalc/pkg/geometry"
	"github.com/philipparndt/powdercalc/pkg/orientation"
	"github.com/philipparndt/powdercalc/pkg/packing"
	"github.com/philipparndt/powdercalc/pkg/pricing"
	"github.com/philipparndt/powdercalc/pkg/printer"
	"github.com/philipparndt/powdercalc/pkg/stl"
)

// ErrInvalidInput is returned for non-numeric or non-positive manual entries.
var ErrInvalidInput = errors.New("invalid input")

// Source tells where the volume and extents of a report came from.
type Source string

const (
	SourceSTL    Source = "stl"
	SourceManual Source = "manual"
)

// Report is the complete estimate for one object.
type Report struct {
	Source      Source             `json:"source"`
	Name        string             `json:"name,omitempty"`
	Triangles   int                `json:"triangles,omitempty"`
	VolumeCm3   float64            `json:"volume_cm3"`
	Extents     geometry.Extents   `json:"extents"`
	Orientation orientation.Result `json:"orientation"`
	Currency    pricing.Currency   `json:"currency"`
	Cost        pricing.Breakdown  `json:"cost"`
	Printers    []PrinterReport    `json:"printers"`
}

// PrinterReport is the packing of the oriented object into one printer.
type PrinterReport struct {
	Profile   printer.Profile    `json:"profile"`
	Packing   packing.Result     `json:"packing"`
	Cell      packing.Box        `json:"cell"`
	Positions []packing.Position `json:"positions"`
	// BatchCost is the material cost of a full bed.
	BatchCost float64 `json:"batch_cost"`
}

// ManualInput is a hand-entered volume and bounding box.
type ManualInput struct {
	VolumeCm3 float64 `json:"volume_cm3"`
	Width     float64 `json:"width"`
	Depth     float64 `json:"depth"`
	Height    float64 `json:"height"`
}

// Validate rejects missing, non-finite or non-positive values
func (in ManualInput) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"volume", in.VolumeCm3},
		{"width", in.Width},
		{"depth", in.Depth},
		{"height", in.Height},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalidInput, f.name, f.value)
		}
	}
	return nil
}

// FromManual builds a report from hand-entered values. Invalid input is
// rejected before anything is computed.
func FromManual(in ManualInput, s Settings) (*Report, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r := &Report{Source: SourceManual}
	ext := geometry.Extents{Width: in.Width, Depth: in.Depth, Height: in.Height}
	if err := r.fill(context.Background(), in.VolumeCm3, ext, s); err != nil {
		return nil, err
	}
	return r, nil
}

// FromSTL decodes buf and builds a report. Volume and extents are derived
// concurrently, each from its own decode pass of buf. A mesh without
// triangles is rejected with stl.ErrMalformed.
func FromSTL(ctx context.Context, name string, buf []byte, s Settings) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var (
		volume    float64
		ext       geometry.Extents
		triangles int
	)

	if stl.IsASCII(buf) {
		model, err := stl.ParseBytes(buf)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL: %w", err)
		}
		volume = analysis.VolumeCm3(model.Triangles)
		ext = analysis.Extents(model.Triangles)
		triangles = model.TriangleCount()
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			tris, err := stl.DecodeChunks(gctx, buf, nil)
			if err != nil {
				return err
			}
			volume, err = analysis.VolumeCm3Context(gctx, tris, nil)
			triangles = len(tris)
			return err
		})
		g.Go(func() error {
			tris, err := stl.Decode(buf)
			if err != nil {
				return err
			}
			ext = analysis.Extents(tris)
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to parse STL: %w", err)
		}
	}

	if triangles == 0 {
		return nil, fmt.Errorf("failed to parse STL: %w: mesh has no triangles", stl.ErrMalformed)
	}

	r := &Report{Source: SourceSTL, Name: name, Triangles: triangles}
	if err := r.fill(ctx, volume, ext, s); err != nil {
		return nil, err
	}
	return r, nil
}

// fill orients, prices and packs the object for every profile.
func (r *Report) fill(ctx context.Context, volume float64, ext geometry.Extents, s Settings) error {
	prices, err := s.Pricing.Lookup(s.Currency)
	if err != nil {
		return err
	}

	r.VolumeCm3 = volume
	r.Extents = ext
	r.Currency = s.Currency
	r.Cost = pricing.Calculate(volume, prices, s.IncludeGlaze)
	r.Orientation = orientation.ForProfiles(ext, s.Profiles)
	if s.Orientation != "" {
		r.Orientation = r.Orientation.With(s.Orientation)
	}

	active := r.Orientation.Active()
	obj := packing.Box{Width: active.Width, Depth: active.Depth, Height: active.Height}

	r.Printers = make([]PrinterReport, len(s.Profiles))
	g, gctx := errgroup.WithContext(ctx)
	for i, profile := range s.Profiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			plan := packing.Layout(obj, profile, s.Packing)
			r.Printers[i] = PrinterReport{
				Profile:   profile,
				Packing:   plan.Result,
				Cell:      plan.Cell,
				Positions: plan.Positions,
				BatchCost: float64(plan.Result.TotalObjects) * r.Cost.Total,
			}
			return nil
		})
	}
	return g.Wait()
}

// Reorient returns a copy of r laid out with t, repacked for the same
// profiles. Volume, extents and cost are unchanged.
func (r *Report) Reorient(t orientation.Type, s Settings) (*Report, error) {
	t, err := orientation.ParseType(string(t))
	if err != nil {
		return nil, err
	}
	s.Orientation = t
	out := &Report{Source: r.Source, Name: r.Name, Triangles: r.Triangles}
	if err := out.fill(context.Background(), r.VolumeCm3, r.Extents, s); err != nil {
		return nil, err
	}
	return out, nil
}
