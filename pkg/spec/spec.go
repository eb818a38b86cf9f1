// Package spec provides the prompt specification document: the read-only
// lookup table of material densities, truck bed geometry, parameter ranges,
// calculation constants, and prompt texts that every estimation component
// consumes. A Document is loaded once at startup and injected into the
// components that need it; it is never mutated afterward.
package spec

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// DefaultMaterial is the material used when an unknown name is requested.
const DefaultMaterial = "As殻"

const (
	fallbackDensity   = 2.5
	fallbackBedArea   = 6.8
	fallbackBedHeight = 0.32

	// defaultTruck supplies bed geometry for unknown truck classes.
	defaultTruck = "4t"
)

//go:embed prompt-spec.json
var embedded []byte

// Document is the parsed prompt specification. All fields are read-only
// after Load; concurrent readers require no locking.
type Document struct {
	Version        string               `json:"version"`
	Materials      map[string]Material  `json:"materials"`
	TruckSpecs     map[string]TruckSpec `json:"truckSpecs"`
	Ranges         Ranges               `json:"ranges"`
	Constants      Constants            `json:"constants"`
	GeometryPrompt string               `json:"geometryPrompt"`
	FillPrompt     string               `json:"fillPrompt"`
}

// Material is a density entry in metric tons per cubic meter.
type Material struct {
	Density float64 `json:"density"`
}

// TruckSpec describes the bed geometry and capacity of a truck class.
type TruckSpec struct {
	BedLength   float64 `json:"bedLength"`
	BedWidth    float64 `json:"bedWidth"`
	BedHeight   float64 `json:"bedHeight"`
	LevelVolume float64 `json:"levelVolume"`
	HeapVolume  float64 `json:"heapVolume"`
	MaxCapacity float64 `json:"maxCapacity"`
}

// Ranges declares the valid interval for every estimation parameter.
// UpperArea, Slope, and FillRatioZ belong to the legacy multi-parameter
// strategy and remain for validation compatibility.
type Ranges struct {
	UpperArea      Range       `json:"upperArea"`
	Height         HeightRange `json:"height"`
	Slope          Range       `json:"slope"`
	FillRatioL     Range       `json:"fillRatioL"`
	FillRatioW     Range       `json:"fillRatioW"`
	FillRatioZ     Range       `json:"fillRatioZ"`
	TaperRatio     Range       `json:"taperRatio"`
	PackingDensity Range       `json:"packingDensity"`
}

// Range is a closed [Min, Max] interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// HeightRange extends Range with a UI step and named calibration landmarks.
type HeightRange struct {
	Min         float64           `json:"min"`
	Max         float64           `json:"max"`
	Step        float64           `json:"step"`
	Calibration HeightCalibration `json:"calibration"`
}

// HeightCalibration holds the physical heights of two visual landmarks on
// the tailgate used as reference points when judging cargo height.
type HeightCalibration struct {
	BackPanel float64 `json:"後板"`
	Hinge     float64 `json:"ヒンジ"`
}

// Constants holds the calculation-tunable scalars of the box-overlay formula.
type Constants struct {
	PlateHeightM         float64 `json:"PLATE_HEIGHT_M"`
	PlateMinNorm         float64 `json:"PLATE_MIN_NORM"`
	BottomFill           float64 `json:"BOTTOM_FILL"`
	CompressionRefVolume float64 `json:"COMPRESSION_REF_VOLUME"`
	CompressionFactor    float64 `json:"COMPRESSION_FACTOR"`
	EffectivePackingMin  float64 `json:"EFFECTIVE_PACKING_MIN"`
	EffectivePackingMax  float64 `json:"EFFECTIVE_PACKING_MAX"`
}

// Load reads and decodes a specification document, rejecting documents
// that violate the structural invariants (positive densities and
// dimensions, ordered ranges).
func Load(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode spec document: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("invalid spec document: %w", err)
	}
	return &doc, nil
}

// LoadFile loads a specification document from the given path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spec document: %w", err)
	}
	defer f.Close()
	return Load(f)
}

var loadDefault = sync.OnceValues(func() (*Document, error) {
	var doc Document
	if err := json.Unmarshal(embedded, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
})

// Default returns the embedded specification document. The embedded
// document is fixed at build time, so a decode failure is a programmer
// error and panics.
func Default() *Document {
	doc, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("embedded prompt-spec.json: %v", err))
	}
	return doc
}

func (d *Document) validate() error {
	if len(d.Materials) == 0 {
		return fmt.Errorf("no materials defined")
	}
	for name, m := range d.Materials {
		if m.Density <= 0 {
			return fmt.Errorf("material %s: density must be positive", name)
		}
	}
	for class, t := range d.TruckSpecs {
		if t.BedLength <= 0 || t.BedWidth <= 0 || t.BedHeight <= 0 {
			return fmt.Errorf("truck %s: bed dimensions must be positive", class)
		}
	}
	ranges := map[string][2]float64{
		"upperArea":      {d.Ranges.UpperArea.Min, d.Ranges.UpperArea.Max},
		"height":         {d.Ranges.Height.Min, d.Ranges.Height.Max},
		"slope":          {d.Ranges.Slope.Min, d.Ranges.Slope.Max},
		"fillRatioL":     {d.Ranges.FillRatioL.Min, d.Ranges.FillRatioL.Max},
		"fillRatioW":     {d.Ranges.FillRatioW.Min, d.Ranges.FillRatioW.Max},
		"fillRatioZ":     {d.Ranges.FillRatioZ.Min, d.Ranges.FillRatioZ.Max},
		"taperRatio":     {d.Ranges.TaperRatio.Min, d.Ranges.TaperRatio.Max},
		"packingDensity": {d.Ranges.PackingDensity.Min, d.Ranges.PackingDensity.Max},
	}
	for field, r := range ranges {
		if r[0] > r[1] {
			return fmt.Errorf("range %s: min %v exceeds max %v", field, r[0], r[1])
		}
	}
	return nil
}

// MaterialDensity returns the density for the named material. Unknown
// names fall back to the default material's density.
func (d *Document) MaterialDensity(name string) float64 {
	if m, ok := d.Materials[name]; ok {
		return m.Density
	}
	if m, ok := d.Materials[DefaultMaterial]; ok {
		return m.Density
	}
	return fallbackDensity
}

// Truck returns the bed specification for a truck class.
func (d *Document) Truck(class string) (TruckSpec, bool) {
	t, ok := d.TruckSpecs[class]
	return t, ok
}

// BedArea returns bed length × width for a truck class, falling back to
// the default class for unknown classes.
func (d *Document) BedArea(class string) float64 {
	if t, ok := d.TruckSpecs[class]; ok {
		return t.BedLength * t.BedWidth
	}
	return d.DefaultBedArea()
}

// DefaultBedArea returns the bed area of the default truck class.
func (d *Document) DefaultBedArea() float64 {
	if t, ok := d.TruckSpecs[defaultTruck]; ok {
		return t.BedLength * t.BedWidth
	}
	return fallbackBedArea
}

// BedHeight returns the bed (tailgate) height for a truck class, falling
// back to a nominal height for unknown classes.
func (d *Document) BedHeight(class string) float64 {
	if t, ok := d.TruckSpecs[class]; ok {
		return t.BedHeight
	}
	return fallbackBedHeight
}

// BackPanelHeight returns the 後板 calibration landmark height.
func (d *Document) BackPanelHeight() float64 {
	return d.Ranges.Height.Calibration.BackPanel
}

// HingeHeight returns the ヒンジ calibration landmark height.
func (d *Document) HingeHeight() float64 {
	return d.Ranges.Height.Calibration.Hinge
}
