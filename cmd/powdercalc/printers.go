package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var printersCmd = &cobra.Command{
	Use:   "printers",
	Short: "List printer profiles",
	Args:  cobra.NoArgs,
	Run:   runPrinters,
}

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Show unit prices for every currency",
	Long:  "Show the price per kg of powder, per ml of binder, per g of silica and per g of glaze, after applying the settings file.",
	Args:  cobra.NoArgs,
	Run:   runPricing,
}

func init() {
	rootCmd.AddCommand(printersCmd)
	rootCmd.AddCommand(pricingCmd)
}

func runPrinters(cmd *cobra.Command, args []string) {
	settings := mustLoadSettings(cmd)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tWIDTH\tDEPTH\tHEIGHT\tLAYER TIME")
	for _, p := range settings.Profiles {
		fmt.Fprintf(tw, "%s\t%g mm\t%g mm\t%g mm\t%g s\n", p.Name, p.Width, p.Depth, p.Height, p.LayerTime)
	}
	_ = tw.Flush()
}

func runPricing(cmd *cobra.Command, args []string) {
	settings := mustLoadSettings(cmd)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CURRENCY\tPOWDER/KG\tBINDER/ML\tSILICA/G\tGLAZE/G")
	for _, c := range settings.Pricing.Currencies() {
		p := settings.Pricing[c]
		marker := ""
		if c == settings.Currency {
			marker = " *"
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s%.4f\t%s%.4f\t%s%.5f\n", c, marker,
			c.Format(p.Powder), c.Symbol(), p.Binder, c.Symbol(), p.Silica, c.Symbol(), p.Glaze)
	}
	_ = tw.Flush()
}
