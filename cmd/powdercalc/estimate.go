package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/powdercalc/pkg/estimate"
	"github.com/philipparndt/powdercalc/pkg/orientation"
	"github.com/philipparndt/powdercalc/pkg/watcher"
)

var (
	estimateWatch   bool
	estimateCompare bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [file...]",
	Short: "Estimate cost and packing for STL files",
	Long: `Decode binary STL files, compute each one's volume and bounding box, and
report material cost, orientation and bed packing for every printer.
With --watch an estimate is repeated whenever its file changes.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().BoolVarP(&estimateWatch, "watch", "w", false, "Re-run an estimate when its file changes")
	estimateCmd.Flags().BoolVar(&estimateCompare, "compare", false, "Also show packing for the other orientation")
}

func runEstimate(cmd *cobra.Command, args []string) {
	settings := mustLoadSettings(cmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed := false
	for i, filename := range args {
		if i > 0 {
			fmt.Println()
		}
		if err := estimateFile(ctx, os.Stdout, filename, settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", filename, err)
			failed = true
		}
	}
	if !estimateWatch {
		if failed {
			os.Exit(1)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "\nWatching %d file(s) for changes (Ctrl+C to stop)\n", len(args))

	// Callbacks of different files run concurrently; keep their reports whole.
	var mu sync.Mutex
	w := watcher.New(200 * time.Millisecond)
	g, gctx := errgroup.WithContext(ctx)
	for _, filename := range args {
		g.Go(func() error {
			return w.Watch(gctx, filename, func(path string) {
				mu.Lock()
				defer mu.Unlock()
				fmt.Printf("\n%s changed, re-estimating\n\n", filepath.Base(path))
				if err := estimateFile(gctx, os.Stdout, path, settings); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
				}
			})
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching files: %v\n", err)
		os.Exit(1)
	}
}

func estimateFile(ctx context.Context, w io.Writer, filename string, settings estimate.Settings) error {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	report, err := estimate.FromSTL(ctx, filepath.Base(filename), buf, settings)
	if err != nil {
		return err
	}
	printReport(w, report)

	if estimateCompare {
		other := orientation.Vertical
		if report.Orientation.Type == orientation.Vertical {
			other = orientation.Flat
		}
		alt, err := report.Reorient(other, settings)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\nWith %s orientation:\n", other)
		printReport(w, alt)
	}
	return nil
}
