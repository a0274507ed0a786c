package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/powdercalc/internal/server"
	"github.com/philipparndt/powdercalc/version"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the estimator over HTTP",
	Long: `Start an HTTP API exposing printers, pricing and estimates.
The listen address defaults to :$PORT, or :8080 when PORT is unset.`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :$PORT)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}
	log.Printf("powdercalc %s", version.GetVersion())
	if cfg.Path != "" {
		log.Printf("loaded settings from %s", cfg.Path)
	}

	addr := serveAddr
	if addr == "" {
		addr = ":" + cfg.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg.Settings).ListenAndServe(ctx, addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
