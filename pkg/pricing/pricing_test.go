package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestMaterialUsage_GlazeIntercept(t *testing.T) {
	usage := MaterialUsage(0)

	nearlyEqual(t, "powderKg", usage.PowderKg, 0)
	nearlyEqual(t, "binderMl", usage.BinderMl, 0)
	nearlyEqual(t, "silicaG", usage.SilicaG, 0)
	nearlyEqual(t, "glazeG", usage.GlazeG, 31.76)
}

func TestCalculate_USDScenario(t *testing.T) {
	prices := Prices{Powder: 100, Binder: 0.09, Silica: 0.072, Glaze: 0.0101}

	b := Calculate(50, prices, true)

	nearlyEqual(t, "powderKg", b.Usage.PowderKg, 0.1)
	nearlyEqual(t, "binderMl", b.Usage.BinderMl, 13.5)
	nearlyEqual(t, "silicaG", b.Usage.SilicaG, 27.5)
	nearlyEqual(t, "glazeG", b.Usage.GlazeG, 39.835)
	nearlyEqual(t, "powder", b.Powder, 10)
	nearlyEqual(t, "binder", b.Binder, 1.215)
	nearlyEqual(t, "silica", b.Silica, 1.98)
	nearlyEqual(t, "glaze", b.Glaze, 0.4023335)
	nearlyEqual(t, "total", b.Total, 13.5973335)
	assert.Equal(t, "$13.60", USD.Format(b.Total))
}

func TestCalculate_WithoutGlaze(t *testing.T) {
	prices := Prices{Powder: 100, Binder: 0.09, Silica: 0.072, Glaze: 0.0101}

	b := Calculate(50, prices, false)

	nearlyEqual(t, "glaze", b.Glaze, 0)
	nearlyEqual(t, "glazeG still reported", b.Usage.GlazeG, 39.835)
	nearlyEqual(t, "total", b.Total, 13.195)
}

func TestCalculate_ZeroVolumeWithGlaze(t *testing.T) {
	b := Calculate(0, Prices{Glaze: 2}, true)
	nearlyEqual(t, "glaze", b.Glaze, 63.52)
	nearlyEqual(t, "total", b.Total, 63.52)
}

func TestCalculate_NegativeVolumePanics(t *testing.T) {
	assert.Panics(t, func() { Calculate(-1, Prices{}, true) })
	assert.Panics(t, func() { Calculate(math.NaN(), Prices{}, true) })
}

func TestBreakdownItems(t *testing.T) {
	b := Breakdown{Powder: 6, Binder: 3, Silica: 1, Glaze: 0, Total: 10}

	items := b.Items()
	require.Len(t, items, 3)
	assert.Equal(t, Item{Name: "Powder", Cost: 6, Share: 60}, items[0])
	assert.Equal(t, "Silica", items[2].Name)

	assert.Empty(t, Breakdown{}.Items())
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, []Currency{EUR, JPY, SGD, USD}, table.Currencies())

	usd, err := table.Lookup(USD)
	require.NoError(t, err)
	assert.Equal(t, 100.0, usd.Powder)
	nearlyEqual(t, "usd glaze", usd.Glaze, 91.0/9000)

	table[USD] = Prices{}
	fresh, _ := DefaultTable().Lookup(USD)
	assert.Equal(t, 100.0, fresh.Powder, "DefaultTable must not share state")
}

func TestTableSetAndLookup(t *testing.T) {
	table := DefaultTable()

	_, err := table.Lookup("GBP")
	assert.ErrorIs(t, err, ErrUnknownCurrency)

	require.NoError(t, table.Set("GBP", Prices{Powder: 80, Binder: 0.07, Silica: 0.06, Glaze: 0.008}))
	gbp, err := table.Lookup("GBP")
	require.NoError(t, err)
	assert.Equal(t, 80.0, gbp.Powder)

	err = table.Set(USD, Prices{Powder: -1})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	usd, _ := table.Lookup(USD)
	assert.Equal(t, 100.0, usd.Powder, "rejected update must not change the table")

	assert.ErrorIs(t, table.Set("", Prices{}), ErrUnknownCurrency)
}

func TestTableClone(t *testing.T) {
	table := DefaultTable()
	clone := table.Clone()
	clone[EUR] = Prices{}
	assert.NotEqual(t, clone[EUR], table[EUR])
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "€", EUR.Symbol())
	assert.Equal(t, "S$", SGD.Symbol())
	assert.Equal(t, "GBP 1.50", Currency("GBP").Format(1.5))
	assert.Equal(t, USD, ParseCurrency(" usd "))
}
