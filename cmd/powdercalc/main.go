package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/powdercalc/internal/config"
	"github.com/philipparndt/powdercalc/pkg/estimate"
	"github.com/philipparndt/powdercalc/pkg/orientation"
	"github.com/philipparndt/powdercalc/pkg/pricing"
	"github.com/philipparndt/powdercalc/pkg/printer"
	"github.com/philipparndt/powdercalc/version"
)

var (
	configPath      string
	currencyFlag    string
	glazeFlag       bool
	wallMarginFlag  float64
	spacingFlag     float64
	orientationFlag string
	printerFlags    []string
)

var rootCmd = &cobra.Command{
	Use:   "powdercalc",
	Short: "Estimate material cost and bed packing for powder-bed 3D prints",
	Long: `powdercalc estimates what a powder-bed print costs from a binary STL file
or from a manually entered volume and bounding box. It prices powder,
binder, silica and glaze, picks a flat or vertical orientation and shows
how many copies fit on each printer's bed.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaults := estimate.DefaultSettings()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML settings file (default $"+config.EnvConfig+")")
	flags.StringVarP(&currencyFlag, "currency", "c", string(defaults.Currency), "Currency for prices (EUR, USD, JPY, SGD)")
	flags.BoolVar(&glazeFlag, "glaze", defaults.IncludeGlaze, "Include glaze in the cost")
	flags.Float64Var(&wallMarginFlag, "wall-margin", defaults.Packing.WallMargin, "Clearance to the bed walls in mm")
	flags.Float64Var(&spacingFlag, "spacing", defaults.Packing.ObjectSpacing, "Clearance between copies in mm")
	flags.StringVarP(&orientationFlag, "orientation", "o", string(defaults.Orientation), "Layout on the bed (flat or vertical)")
	flags.StringSliceVarP(&printerFlags, "printer", "p", nil, "Only report these printers, e.g. \"Printer 400\" (default all)")
}

// loadConfig resolves the settings file and environment, then applies the
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	s := &cfg.Settings
	flags := cmd.Flags()
	if flags.Changed("currency") {
		s.Currency = pricing.ParseCurrency(currencyFlag)
	}
	if flags.Changed("glaze") {
		s.IncludeGlaze = glazeFlag
	}
	if flags.Changed("wall-margin") {
		s.Packing.WallMargin = wallMarginFlag
	}
	if flags.Changed("spacing") {
		s.Packing.ObjectSpacing = spacingFlag
	}
	if flags.Changed("orientation") {
		t, err := orientation.ParseType(orientationFlag)
		if err != nil {
			return config.Config{}, err
		}
		s.Orientation = t
	}
	if flags.Changed("printer") {
		profiles := make([]printer.Profile, 0, len(printerFlags))
		for _, name := range printerFlags {
			p, err := printer.Lookup(name)
			if err != nil {
				return config.Config{}, err
			}
			profiles = append(profiles, p)
		}
		s.Profiles = profiles
	}

	if err := s.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func mustLoadSettings(cmd *cobra.Command) estimate.Settings {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}
	return cfg.Settings
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
