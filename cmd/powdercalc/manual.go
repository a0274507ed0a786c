package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/powdercalc/pkg/estimate"
)

var manualInput estimate.ManualInput

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Estimate from a hand-entered volume and bounding box",
	Long:  "Price and pack an object without an STL file, from its volume in cm³ and its width, depth and height in mm.",
	Args:  cobra.NoArgs,
	Run:   runManual,
}

func init() {
	rootCmd.AddCommand(manualCmd)

	manualCmd.Flags().Float64Var(&manualInput.VolumeCm3, "volume", 0, "Volume in cm³")
	manualCmd.Flags().Float64Var(&manualInput.Width, "width", 0, "Width (X) in mm")
	manualCmd.Flags().Float64Var(&manualInput.Depth, "depth", 0, "Depth (Y) in mm")
	manualCmd.Flags().Float64Var(&manualInput.Height, "height", 0, "Height (Z) in mm")

	for _, name := range []string{"volume", "width", "depth", "height"} {
		_ = manualCmd.MarkFlagRequired(name)
	}
}

func runManual(cmd *cobra.Command, args []string) {
	settings := mustLoadSettings(cmd)

	report, err := estimate.FromManual(manualInput, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, report)
}
