package goslice

import (
	"time"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
	"github.com/aligator/goslice/gcode/renderer"
	"github.com/aligator/goslice/handler"
	"github.com/aligator/goslice/modifier"
	"github.com/aligator/goslice/optimizer"
	"github.com/aligator/goslice/reader"
	"github.com/aligator/goslice/slicer"
	"github.com/aligator/goslice/writer"
)

// GoSlice combines all logic needed to slice a model and generate a G-code
// file: it wires one implementation of each handler interface together and
// drives them in order (Process).
type GoSlice struct {
	Options   data.GoSliceOptions
	Reader    handler.ModelReader
	Optimizer handler.ModelOptimizer
	Slicer    handler.ModelSlicer
	Modifiers []handler.LayerModifier
	Generator handler.GCodeGenerator
	Writer    handler.GCodeWriter
}

// NewGoSlice provides a GoSlice with all built in implementations.
func NewGoSlice(options data.Options) *GoSlice {
	s := &GoSlice{
		Options: options.GoSlice,
	}

	s.Reader = reader.Reader(&options)
	s.Optimizer = optimizer.NewOptimizer(&options)
	s.Slicer = slicer.NewSlicer(&options)
	s.Modifiers = []handler.LayerModifier{
		modifier.NewPerimeterModifier(&options),
		modifier.NewInfillModifier(&options),
		modifier.NewIronModifier(&options),
		modifier.NewSupportDetectorModifier(&options),
		modifier.NewSupportGeneratorModifier(&options),
		modifier.NewBrimModifier(&options),
		modifier.NewRaftModifier(&options),
	}

	s.Generator = gcode.NewGenerator(
		&options,
		gcode.WithRenderer(renderer.PreLayer{}),
		gcode.WithRenderer(renderer.NewSkirt(&options)),
		gcode.WithRenderer(renderer.NewBrim(&options)),
		gcode.WithRenderer(renderer.NewSupport(&options)),
		gcode.WithRenderer(renderer.NewPerimeter(&options)),
		gcode.WithRenderer(renderer.NewInfill(&options)),
		gcode.WithRenderer(renderer.PostLayer{}),
	)
	s.Writer = writer.Writer()

	return s
}

// Process runs the full pipeline once, end to end: read, optimize, slice,
// modify, generate, write.
func (s *GoSlice) Process() error {
	startTime := time.Now()

	// 1. Load model
	s.Options.Logger.Printf("Load model %v\n", s.Options.InputFilePath)
	model, err := s.Reader.Read(s.Options.InputFilePath)
	if err != nil {
		return err
	}
	s.Options.Logger.Printf("Model loaded.\nFace count: %v\nSize: min: %v max %v\n", model.FaceCount(), model.Min(), model.Max())

	// 2. Optimize model
	optimizedModel, err := s.Optimizer.Optimize(model)
	if err != nil {
		return err
	}
	s.Options.Logger.Printf("Model optimized\n")

	// 3. Slice model into layers
	layers, err := s.Slicer.Slice(optimizedModel)
	if err != nil {
		return err
	}
	s.Options.Logger.Printf("Model sliced to %v layers\n", len(layers))

	// 4. Modify the layers: perimeters, infill, support, brim/raft.
	for _, m := range s.Modifiers {
		m.Init(optimizedModel)
		if err := m.Modify(layers); err != nil {
			return err
		}
		s.Options.Logger.Printf("Modifier %s applied\n", m.GetName())
	}
	s.Options.Logger.Printf("Layers modified %v\n", len(layers))

	// 5. generate gcode from the layers
	s.Generator.Init(optimizedModel)
	finalGcode, err := s.Generator.Generate(layers)
	if err != nil {
		return err
	}

	outputPath := s.Options.OutputFilePath
	if outputPath == "" {
		outputPath = s.Options.InputFilePath + ".gcode"
	}

	err = s.Writer.Write(finalGcode, outputPath)
	s.Options.Logger.Println("full processing time:", time.Since(startTime))

	return err
}
