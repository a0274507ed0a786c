package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/philipparndt/powdercalc/pkg/analysis"
	"github.com/philipparndt/powdercalc/pkg/stl"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an STL file",
	Long:  "Show triangle count, file size, bounding box, surface area and volume of an STL file.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	result := analysis.Analyze(model)

	fmt.Println("STL File Information")
	fmt.Println("====================")
	if result.Name != "" {
		fmt.Printf("Name: %s\n", result.Name)
	}
	fmt.Printf("File: %s (%s)\n\n", filename, humanize.Bytes(uint64(result.FileSize)))

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %s\n", humanize.Comma(int64(result.TriangleCount)))
	fmt.Printf("  Surface Area: %s mm²\n", humanize.FormatFloat("#,###.##", result.SurfaceArea))
	fmt.Printf("  Volume: %.3f cm³\n", result.VolumeCm3)
	fmt.Printf("  Bounding Box Fill: %.1f%%\n\n", result.BoxFill*100)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n\n", analysis.FormatVector(result.BoundingBox.Max))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.3f mm\n", result.Extents.Width)
	fmt.Printf("  Depth (Y): %.3f mm\n", result.Extents.Depth)
	fmt.Printf("  Height (Z): %.3f mm\n", result.Extents.Height)
}
