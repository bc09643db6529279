// Command goslice reads an STL file, slices it and writes the resulting
// G-code next to it (or to the path -o names). Flags mirror the most
// commonly tuned PrintOptions directly; anything more exotic goes through
// repeated -S key=value overrides (section 6), since a full settings-file
// grammar is explicitly out of scope for this repository.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	goslice "github.com/aligator/goslice"
	"github.com/aligator/goslice/data"
)

func main() {
	options := data.NewDefaultOptions()
	options.GoSlice.Logger = log.New(os.Stderr, "", log.LstdFlags)

	var (
		output        string
		layerHeight   float64
		extrusionW    float64
		shells        int
		infillPercent int
		translateX    float64
		translateY    float64
		zChop         float64
		preview       bool
		overrides     []string
	)

	flag.StringVarP(&output, "output", "o", "", "output .gcode path (defaults to <input>.gcode)")
	flag.Float64Var(&layerHeight, "layer-height", float64(options.Print.LayerThickness.ToMillimeter()), "layer thickness in mm")
	flag.Float64Var(&extrusionW, "extrusion-width", float64(options.Printer.ExtrusionWidth.ToMillimeter()), "nozzle extrusion width in mm")
	flag.IntVar(&shells, "shells", options.Print.InsetCount, "number of perimeter shells")
	flag.IntVar(&infillPercent, "infill", options.Print.InfillPercent, "sparse infill density, percent")
	flag.Float64Var(&translateX, "translate-x", 0, "shift the model on the X axis, mm")
	flag.Float64Var(&translateY, "translate-y", 0, "shift the model on the Y axis, mm")
	flag.Float64Var(&zChop, "z-chop", 0, "clip this many mm off the model's bottom before slicing")
	flag.BoolVar(&preview, "preview", false, "log extra per-stage diagnostics instead of just progress")
	flag.StringArrayVarP(&overrides, "setting", "S", nil, "override one setting, key=value (repeatable)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: goslice [flags] <model.stl|->")
		os.Exit(2)
	}

	options.GoSlice.InputFilePath = flag.Arg(0)
	options.GoSlice.OutputFilePath = output
	options.GoSlice.TranslateX = data.Millimeter(translateX)
	options.GoSlice.TranslateY = data.Millimeter(translateY)
	options.GoSlice.ZChop = data.Millimeter(zChop)
	options.GoSlice.Preview = preview
	options.Print.LayerThickness = data.Millimeter(layerHeight).ToMicrometer()
	options.Printer.ExtrusionWidth = data.Millimeter(extrusionW).ToMicrometer()
	options.Print.InsetCount = shells
	options.Print.InfillPercent = infillPercent

	for _, kv := range overrides {
		if err := applyOverride(&options, kv); err != nil {
			fmt.Fprintln(os.Stderr, "goslice:", err)
			os.Exit(2)
		}
	}

	if err := goslice.NewGoSlice(options).Process(); err != nil {
		options.GoSlice.Logger.Fatalf("processing failed: %v", err)
	}
}

// applyOverride implements one -S key=value pair against the small set of
// settings not already exposed as a dedicated flag (section 6's override
// mechanism). Unknown keys are a usage error, not a silent no-op.
func applyOverride(options *data.Options, kv string) error {
	parts := strings.SplitN(kv, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid -S value %q, want key=value", kv)
	}
	key, value := parts[0], parts[1]

	switch key {
	case "support.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		options.Print.Support.Enabled = b
	case "support.angle":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		options.Print.Support.ThresholdAngle = f
	case "brim.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		options.Print.Brim.Enabled = b
	case "brim.width":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		options.Print.Brim.Width = data.Millimeter(f)
	case "raft.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		options.Print.Raft.Enabled = b
	case "ironing.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		options.Print.IroningEnabled = b
	case "infill.pattern":
		switch value {
		case "grid":
			options.Print.InfillPattern = data.InfillGrid
		case "triangle":
			options.Print.InfillPattern = data.InfillTriangle
		case "triangle2":
			options.Print.InfillPattern = data.InfillTriangle2
		case "rectilinear":
			options.Print.InfillPattern = data.InfillRectilinear
		default:
			return fmt.Errorf("unknown infill.pattern %q", value)
		}
	case "flow-multiplier":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		options.Filament.FlowMultiplier = f
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
