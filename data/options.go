package data

import "log"

// Options collects every tunable of the pipeline (section 6). Settings-file
// parsing/validation is a Non-goal (spec.md section 1) — Options is always
// built in memory, starting from NewDefaultOptions and overridden by CLI
// flags (-S key=value), never parsed from a generic config grammar.
type Options struct {
	GoSlice  GoSliceOptions
	Printer  PrinterOptions
	Filament FilamentOptions
	Print    PrintOptions
}

// GoSliceOptions are the process-level knobs: paths, logging, scale.
type GoSliceOptions struct {
	InputFilePath  string
	OutputFilePath string
	Logger         *log.Logger

	// ScaleConstant maps millimeters to the integer lattice
	// (section 3); defaults to data.ScaleConstant.
	ScaleConstant float64

	// Tolerance bounds how far apart two segment endpoints may be and
	// still be stitched together (section 4.2).
	Tolerance Millimeter

	// Coarseness is the RDP simplification epsilon, in millimeters,
	// applied to stitched outlines and insets (section 4.2/4.3).
	Coarseness Millimeter

	TranslateX, TranslateY Millimeter
	ZChop                  Millimeter

	Preview bool
}

// PrinterOptions describe the physical machine (section 3/6).
type PrinterOptions struct {
	ExtrusionWidth Micrometer
	NozzleDiameter Millimeter
}

// FilamentOptions describe the consumable and its thermal profile.
type FilamentOptions struct {
	MaterialDiameter Millimeter
	MaterialDensity  float64 // g/cm^3
	MaterialCost     float64 // currency per kg
	FlowMultiplier   float64

	InitialHotEndTemperature int
	InitialBedTemperature    int
	HotEndTemperature        int
	BedTemperature           int

	// InitialTemperatureLayerCount is the layer index at which the
	// steady-state temperature (as opposed to the initial one) is set.
	InitialTemperatureLayerCount int

	RetractionSpeed  Millimeter // mm/s
	RetractionLength Millimeter // mm

	FanSpeed FanSpeedOptions
}

// FanSpeedOptions is the cooling-fan schedule.
type FanSpeedOptions struct {
	LayerToSpeedLUT map[int]int
}

// PrintOptions are the per-print slicing parameters (sections 3, 4, 6).
type PrintOptions struct {
	InitialLayerThickness Micrometer
	LayerThickness        Micrometer

	InsetCount       int // "shells" in spec.md
	FloorLayers      int
	RoofLayers       int

	PackingDensity     float64
	EdgePackingDensity float64

	InfillPercent        int
	InfillRotationDegree int
	InfillZigZag         bool
	InfillOverlapPercent int // percent, matches teacher's Fill() signature
	InfillPattern        InfillPattern

	SolidInfillClipOffsetPercent int // percent of extrusion width
	SolidFillExpansionPercent    int // percent of extrusion width
	MinSparseInfillLength        Micrometer
	NeighborLayersForSolid       bool
	FillThresholdPercent         int // percent of extrusion_width, gap threshold

	IroningEnabled bool
	IronDensity    int // percent

	SmoothInfillEnabled          bool
	InfillSmoothThresholdPercent int       // percent of extrusion_width*2
	InfillShorteningDistance     Micrometer // trimmed off each end of a "connect" pair

	AlignSeams         bool
	AlignInteriorSeams bool
	OutsideFirst       bool
	StrictShellOrder   bool

	ShellClipPercent int // percent of extrusion width trimmed off shell tail
	AnchorEnabled    bool
	CoastEnabled     bool
	CoastLength      Micrometer

	MovingRetractEnabled bool
	RetractSpeed         Millimeter // mm/s
	MovingRetractSpeed   Millimeter // mm/s
	WipeLength           Micrometer
	SupportWipeLength    Micrometer
	RetractThreshold     Micrometer // infill
	RetractMinTravel     Micrometer // other

	CombingEnabled bool

	LayerSpeed       Millimeter // mm/s
	IntialLayerSpeed Millimeter // mm/s (sic, matches teacher's field spelling)
	MoveSpeed        Millimeter // mm/s
	FirstLayerSpeedMult float64

	LayerTimeSamples int
	MinLayerTime     float64 // seconds
	MinFeedRate      Millimeter // mm/s

	SeparateZTravel bool

	Brim BrimOptions
	Raft RaftOptions

	Skirt SkirtOptions

	Support SupportOptions
}

// InfillPattern selects the sparse-infill line generator (section 4.4).
type InfillPattern int

const (
	InfillGrid InfillPattern = iota
	InfillTriangle
	InfillTriangle2
	InfillRectilinear
)

// BrimOptions configure the build-plate adhesion rings (section 4.7).
type BrimOptions struct {
	Enabled           bool
	Width             Millimeter
	AdhesionFactor    float64
}

// RaftOptions configure the sacrificial base (section 4.7).
type RaftOptions struct {
	Enabled             bool
	XYExpansion         Millimeter
	BaseLayerHeight     Micrometer
	BaseLayerWidth      Micrometer
	BaseLayerDensity    float64
	InterfaceLayers     int
}

// SkirtOptions configure the priming loop(s) drawn before the object.
type SkirtOptions struct {
	Enabled bool
	Lines   int
	Distance Millimeter
}

// SupportOptions configure generated support material (section 4.6).
type SupportOptions struct {
	Enabled           bool
	ThresholdAngle    float64 // degrees from vertical
	TopGapLayers      int
	PatternSpacing    Millimeter
	Gap               Millimeter
	InterfaceLayers   int
	FloorLayers       int
	Density           int // percent
	InterfaceDensity  int // percent
	XYExpansion       Micrometer
	Margin            float64 // fraction of edge_width
	VertMargin        int     // layers
	Everywhere        bool
	Layer0SolidBase   bool
}

// NewDefaultOptions returns the built in defaults, matching the values
// every GoSlice-style slicer ships with out of the box.
func NewDefaultOptions() Options {
	return Options{
		GoSlice: GoSliceOptions{
			ScaleConstant: ScaleConstant,
			Tolerance:     0.02,
			Coarseness:    0.02,
		},
		Printer: PrinterOptions{
			ExtrusionWidth: Millimeter(0.45).ToMicrometer(),
			NozzleDiameter: 0.4,
		},
		Filament: FilamentOptions{
			MaterialDiameter:             1.75,
			MaterialDensity:              1.24,
			MaterialCost:                 20,
			FlowMultiplier:               1.0,
			InitialHotEndTemperature:     200,
			InitialBedTemperature:        60,
			HotEndTemperature:            200,
			BedTemperature:               60,
			InitialTemperatureLayerCount: 1,
			RetractionSpeed:              40,
			RetractionLength:             1,
			FanSpeed:                     FanSpeedOptions{LayerToSpeedLUT: map[int]int{0: 0, 2: 255}},
		},
		Print: PrintOptions{
			InitialLayerThickness: Millimeter(0.3).ToMicrometer(),
			LayerThickness:        Millimeter(0.2).ToMicrometer(),
			InsetCount:            2,
			FloorLayers:           0,
			RoofLayers:            0,
			PackingDensity:        0.95,
			EdgePackingDensity:    1.0,
			InfillPercent:         20,
			InfillRotationDegree:  45,
			InfillOverlapPercent:  10,
			InfillPattern:         InfillGrid,
			SolidInfillClipOffsetPercent: 50,
			SolidFillExpansionPercent:    10,
			MinSparseInfillLength:        Millimeter(1).ToMicrometer(),
			NeighborLayersForSolid:       true,
			FillThresholdPercent:         90,
			IronDensity:                  30,
			SmoothInfillEnabled:          true,
			InfillSmoothThresholdPercent: 50,
			InfillShorteningDistance:     Millimeter(0.1).ToMicrometer(),
			AlignSeams:                   true,
			AlignInteriorSeams:           false,
			ShellClipPercent:             0,
			CoastLength:                  0,
			RetractSpeed:                 40,
			MovingRetractSpeed:           40,
			WipeLength:                   Millimeter(0.5).ToMicrometer(),
			SupportWipeLength:            0,
			RetractThreshold:             Millimeter(5).ToMicrometer(),
			RetractMinTravel:             Millimeter(1.5).ToMicrometer(),
			CombingEnabled:               true,
			LayerSpeed:                   60,
			IntialLayerSpeed:             30,
			MoveSpeed:                    120,
			FirstLayerSpeedMult:          0.5,
			LayerTimeSamples:             5,
			MinLayerTime:                 5,
			MinFeedRate:                  10,
			Brim: BrimOptions{
				AdhesionFactor: 1.0,
			},
			Raft: RaftOptions{
				BaseLayerHeight:  Millimeter(0.3).ToMicrometer(),
				BaseLayerWidth:   Millimeter(0.8).ToMicrometer(),
				BaseLayerDensity: 0.4,
				InterfaceLayers:  2,
			},
			Skirt: SkirtOptions{
				Lines:    1,
				Distance: 3,
			},
			Support: SupportOptions{
				ThresholdAngle:   60,
				TopGapLayers:     1,
				PatternSpacing:   Millimeter(2),
				Gap:              Millimeter(0.2),
				InterfaceLayers:  2,
				FloorLayers:      0,
				Density:          20,
				InterfaceDensity: 70,
				Margin:           0.5,
				VertMargin:       2,
			},
		},
	}
}

func ToRadians(deg float64) float64 {
	return deg * 3.14159265358979323846 / 180
}
