package docx

import "math"

// WordprocessingML uses three unit systems: twentieths of a point
// (twips) for page geometry and indentation, half-points for font
// sizes, and English Metric Units for drawing extents.
const (
	twipsPerPoint = 20
	pointsPerInch = 72
	cmPerInch     = 2.54
	emuPerCm      = 360000
)

// TwipsFromCm converts centimeters to twips, rounded to the nearest
// whole unit.
func TwipsFromCm(cm float64) int {
	return int(math.Round(cm / cmPerInch * pointsPerInch * twipsPerPoint))
}

// TwipsFromPt converts points to twips.
func TwipsFromPt(pt float64) int {
	return int(math.Round(pt * twipsPerPoint))
}

// HalfPoints converts a font size in points to half-points.
func HalfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}

// EMUFromCm converts centimeters to English Metric Units.
func EMUFromCm(cm float64) int64 {
	return int64(math.Round(cm * emuPerCm))
}

// LineSpacingValue converts a line-spacing multiple to the w:line
// attribute scale, where 240 is single spacing.
func LineSpacingValue(multiple float64) int {
	return int(math.Round(multiple * 240))
}
