package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chrissnell/divegas/pkg/gas"
	"github.com/chrissnell/divegas/pkg/nitrox"
	"github.com/chrissnell/divegas/pkg/units"
	"github.com/shopspring/decimal"
)

type options struct {
	mode     string
	depth    float64
	ppO2     float64
	o2       string
	he       string
	fraction float64
	ambient  float64
	water    string
}

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", "best", "Calculation: best, mod, ambient, partial or trimix")
	flag.Float64Var(&opts.depth, "depth", 0, "Depth in meters (best, ambient)")
	flag.Float64Var(&opts.ppO2, "ppo2", nitrox.DefaultPartialPressureLimit, "Oxygen partial pressure in bar (best, mod)")
	flag.StringVar(&opts.o2, "o2", "", "Oxygen fraction, e.g. 0.32 (mod, trimix)")
	flag.StringVar(&opts.he, "he", "", "Helium fraction, e.g. 0.45 (trimix)")
	flag.Float64Var(&opts.fraction, "fraction", 0, "Gas fraction (partial)")
	flag.Float64Var(&opts.ambient, "ambient", 0, "Ambient pressure in bar (partial)")
	flag.StringVar(&opts.water, "water", string(nitrox.FreshWater), "Water type: fresh, brackish or salt")
	flag.Parse()

	if err := run(os.Stdout, nitrox.NewCalculators(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, calcs *nitrox.Calculators, opts options) error {
	water, err := nitrox.ParseWaterType(opts.water)
	if err != nil {
		return err
	}

	switch opts.mode {
	case "best":
		best, err := calcs.BestNitroxForDepth.CalculateBestNitroxForDepth(
			units.DepthFromMeters(opts.depth), units.PressureFromBars(opts.ppO2), water.Density())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Best nitrox at %s (%s water, ppO2 %s)\n", units.DepthFromMeters(opts.depth), water, units.PressureFromBars(opts.ppO2))
		fmt.Fprintf(w, "  Mix:      %s\n", best.EAN())
		fmt.Fprintf(w, "  Oxygen:   %s%%\n", best.OxygenPercentage().StringFixed(2))
		fmt.Fprintf(w, "  Nitrogen: %s%%\n", best.NitrogenPercentage().StringFixed(2))

	case "mod":
		o2, err := parseFraction("o2", opts.o2)
		if err != nil {
			return err
		}
		mod, err := calcs.MaximumOperatingDepth.CalculateMaximumOperatingDepth(units.PressureFromBars(opts.ppO2), o2.InexactFloat64())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Maximum operating depth for %s%% oxygen at ppO2 %s: %s\n", o2.Shift(2), units.PressureFromBars(opts.ppO2), mod)

	case "ambient":
		p, err := calcs.AmbientPressure.CalculateAmbientPressure(units.DepthFromMeters(opts.depth), water.Density())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Ambient pressure at %s (%s water): %.4f bar (%.4f atm)\n", units.DepthFromMeters(opts.depth), water, p.Bars(), p.Atmospheres())

	case "partial":
		p, err := calcs.PartialPressure.CalculatePartialPressure(units.PressureFromBars(opts.ambient), opts.fraction)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Partial pressure: %.4f bar\n", p.Bars())

	case "trimix":
		o2, err := parseFraction("o2", opts.o2)
		if err != nil {
			return err
		}
		he, err := parseFraction("he", opts.he)
		if err != nil {
			return err
		}
		mix, err := gas.NewTrimixGasFromOxygenHelium(o2, he)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Trimix %s\n", mix.TX())
		fmt.Fprintf(w, "  Oxygen:   %s%%\n", mix.OxygenPercentage().StringFixed(2))
		fmt.Fprintf(w, "  Helium:   %s%%\n", mix.HeliumPercentage().StringFixed(2))
		fmt.Fprintf(w, "  Nitrogen: %s%%\n", mix.NitrogenPercentage().StringFixed(2))

	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}

	return nil
}

func parseFraction(flagName, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("-%s is required", flagName)
	}
	f, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid -%s %q: %w", flagName, raw, err)
	}
	return f, nil
}
