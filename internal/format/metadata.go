package format

import (
	"fmt"
	"math"
)

// Format identifies one of the supported raster image formats.
type Format string

const (
	FormatPNG  Format = "PNG"
	FormatJPEG Format = "JPEG"
	FormatBMP  Format = "BMP"
	FormatGIF  Format = "GIF"
)

func (f Format) String() string {
	return string(f)
}

// DensityUnit is the unit a Density is expressed in.
type DensityUnit string

const (
	UnitDPI DensityUnit = "dpi" // dots per inch
	UnitPPI DensityUnit = "ppi" // pixels per inch
)

// Density is the physical resolution stored in an image header.
type Density struct {
	X    uint32      `json:"x"`
	Y    uint32      `json:"y"`
	Unit DensityUnit `json:"units"`
}

func (d Density) String() string {
	if d.X == d.Y {
		return fmt.Sprintf("%d %s", d.X, d.Unit)
	}
	return fmt.Sprintf("%dx%d %s", d.X, d.Y, d.Unit)
}

// ImageMetadata holds the structural metadata read from an image header.
// Width and Height are taken from the header as they are and are never
// checked against the pixel data. Channels is an estimate derived from the
// color type or bit depth fields and falls back to 3 when it cannot be told.
// A nil Density means the file does not carry one.
type ImageMetadata struct {
	Format   Format   `json:"format"`
	Width    uint32   `json:"width"`
	Height   uint32   `json:"height"`
	Channels uint32   `json:"channels"`
	Density  *Density `json:"density,omitempty"`
}

const (
	inchesPerMeter = 0.0254
	cmPerInch      = 2.54
)

// perMeterToPerInch converts a pixels-per-meter value to pixels-per-inch.
func perMeterToPerInch(v float64) uint32 {
	return uint32(math.Round(v * inchesPerMeter))
}

// perCmToPerInch converts a dots-per-centimeter value to dots-per-inch.
func perCmToPerInch(v float64) uint32 {
	return uint32(math.Round(v * cmPerInch))
}
