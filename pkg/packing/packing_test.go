package packing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/powdercalc/pkg/printer"
)

func params(margin, spacing float64) Params {
	return Params{WallMargin: margin, ObjectSpacing: spacing}
}

func TestPack_CountIdentity(t *testing.T) {
	// available width 120 - 2*10 = 100; floor((100+10)/(20+10)) = 3
	bed := printer.Profile{Name: "test", Width: 120, Depth: 120, Height: 100, LayerTime: 10}

	r := Pack(Box{Width: 20, Depth: 20, Height: 20}, bed, params(10, 10))

	require.True(t, r.FitsInPrinter)
	assert.Equal(t, 3, r.XCount)
	assert.Equal(t, 3, r.YCount)
	assert.Equal(t, 3, r.ZCount)
	assert.Equal(t, 27, r.TotalObjects)
	assert.Equal(t, "3 × 3 × 3", r.Arrangement)
	assert.Equal(t, 80.0, r.TotalHeight)
	assert.Equal(t, 800*10.0, r.PrintTime)
	assert.False(t, r.Rotated)
}

func TestPack_BuiltInPrinters(t *testing.T) {
	obj := Box{Width: 40, Depth: 30, Height: 20}

	tests := []struct {
		profile printer.Profile
		want    Result
	}{
		{
			profile: printer.Printer400,
			want: Result{
				FitsInPrinter: true, XCount: 7, YCount: 6, ZCount: 6, TotalObjects: 252,
				Arrangement: "7 × 6 × 6", TotalHeight: 195, PrintTime: 1950 * 45,
			},
		},
		{
			profile: printer.Printer600,
			want: Result{
				FitsInPrinter: true, XCount: 10, YCount: 13, ZCount: 7, TotalObjects: 910,
				Arrangement: "10 × 13 × 7", TotalHeight: 230, PrintTime: 2300 * 35,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.profile.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pack(obj, tt.profile, DefaultParams()))
		})
	}
}

func TestPack_RotationFallback(t *testing.T) {
	// XY envelope 200×400 with a 10mm margin leaves 180×380
	bed := printer.Profile{Name: "narrow", Width: 200, Depth: 400, Height: 100, LayerTime: 30}
	obj := Box{Width: 300, Depth: 100, Height: 10}
	p := params(10, 15)

	// as given, 300 > 180
	require.Greater(t, obj.Width, bed.Width-2*p.WallMargin)

	r := Pack(obj, bed, p)
	assert.True(t, r.FitsInPrinter)
	assert.True(t, r.Rotated)
	assert.Equal(t, 1, r.XCount)
	assert.Equal(t, 1, r.YCount)
	assert.Equal(t, 4, r.ZCount)
	assert.Equal(t, 85.0, r.TotalHeight)

	plan := Layout(obj, bed, p)
	assert.Equal(t, Box{Width: 100, Depth: 300, Height: 10}, plan.Cell)
}

func TestPack_DoesNotFitEitherWay(t *testing.T) {
	obj := Box{Width: 500, Depth: 500, Height: 10}

	r := Pack(obj, printer.Printer400, DefaultParams())
	assert.Equal(t, Result{Arrangement: "N/A"}, r)

	positions := Positions(obj, printer.Printer400, DefaultParams())
	require.NotNil(t, positions)
	assert.Empty(t, positions)
}

func TestPack_WallMarginCountsAgainstFit(t *testing.T) {
	// Printer 400 leaves 370×270 inside a 10mm margin
	r := Pack(Box{Width: 370, Depth: 270, Height: 10}, printer.Printer400, DefaultParams())
	assert.True(t, r.FitsInPrinter)
	assert.Equal(t, "1 × 1 × 8", r.Arrangement)

	r = Pack(Box{Width: 371, Depth: 10, Height: 10}, printer.Printer400, DefaultParams())
	assert.False(t, r.FitsInPrinter)
	assert.Equal(t, NotApplicable, r.Arrangement)
}

func TestPack_HeightRejection(t *testing.T) {
	obj := Box{Width: 50, Depth: 50, Height: 300}

	r := Pack(obj, printer.Printer400, DefaultParams())
	assert.False(t, r.FitsInPrinter)
	assert.Equal(t, 0, r.TotalObjects)
	assert.Equal(t, 5, r.XCount)
	assert.Equal(t, 4, r.YCount)
	assert.Equal(t, 0, r.ZCount)
	assert.Equal(t, "5 × 4 × 0", r.Arrangement)
	assert.Equal(t, 0.0, r.PrintTime)

	assert.Empty(t, Positions(obj, printer.Printer400, DefaultParams()))
}

func TestPack_FullBuildHeight(t *testing.T) {
	r := Pack(Box{Width: 50, Depth: 50, Height: 200}, printer.Printer400, DefaultParams())
	assert.True(t, r.FitsInPrinter)
	assert.Equal(t, 1, r.ZCount)
	assert.Equal(t, 200.0, r.TotalHeight)
}

func TestPositions_OrderAndCoordinates(t *testing.T) {
	bed := printer.Profile{Name: "small", Width: 100, Depth: 80, Height: 50, LayerTime: 1}
	obj := Box{Width: 30, Depth: 20, Height: 15}

	positions := Positions(obj, bed, params(10, 10))

	assert.Equal(t, []Position{
		{X: 10, Y: 10, Z: 0}, {X: 50, Y: 10, Z: 0},
		{X: 10, Y: 40, Z: 0}, {X: 50, Y: 40, Z: 0},
		{X: 10, Y: 10, Z: 25}, {X: 50, Y: 10, Z: 25},
		{X: 10, Y: 40, Z: 25}, {X: 50, Y: 40, Z: 25},
	}, positions)
}

func TestPositions_MatchPackAndStayInside(t *testing.T) {
	objs := []Box{
		{Width: 40, Depth: 30, Height: 20},
		{Width: 100, Depth: 50, Height: 20},
		{Width: 20, Depth: 50, Height: 100},
		{Width: 280, Depth: 370, Height: 5},
	}
	p := DefaultParams()

	for _, profile := range printer.All() {
		for _, obj := range objs {
			plan := Layout(obj, profile, p)
			require.Len(t, plan.Positions, plan.Result.TotalObjects, "%s %v", profile.Name, obj)

			for _, pos := range plan.Positions {
				assert.GreaterOrEqual(t, pos.X, p.WallMargin)
				assert.GreaterOrEqual(t, pos.Y, p.WallMargin)
				assert.LessOrEqual(t, pos.X+plan.Cell.Width, profile.Width-p.WallMargin+1e-9)
				assert.LessOrEqual(t, pos.Y+plan.Cell.Depth, profile.Depth-p.WallMargin+1e-9)
				assert.LessOrEqual(t, pos.Z+plan.Cell.Height, profile.Height+1e-9)
			}
		}
	}
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())
	assert.ErrorIs(t, params(0, 15).Validate(), ErrInvalidParams)
	assert.ErrorIs(t, params(10, -1).Validate(), ErrInvalidParams)
}

func TestPack_InvalidParamsFitNothing(t *testing.T) {
	flat := Box{Width: 0, Depth: 20, Height: 0}

	for _, p := range []Params{params(10, 0), params(0, 15), params(10, -5)} {
		r := Pack(flat, printer.Printer400, p)
		assert.False(t, r.FitsInPrinter, "%+v", p)
		assert.Equal(t, NotApplicable, r.Arrangement)
		assert.Zero(t, r.TotalObjects)

		positions := Positions(flat, printer.Printer400, p)
		assert.NotNil(t, positions)
		assert.Empty(t, positions)
	}
}
