package domain

import "fmt"

// Warning classifies a reading against its ideal band
type Warning string

const (
	WarningGood Warning = "good"
	WarningHigh Warning = "high"
	WarningLow  Warning = "low"
)

// IdealBands holds the comfort range for each variable
type IdealBands map[Variable]Range

// DefaultIdealBands returns the standard greenhouse comfort ranges
func DefaultIdealBands() IdealBands {
	return IdealBands{
		Temperature: {Min: 21.0, Max: 27.0},
		Humidity:    {Min: 65, Max: 80},
		Light:       {Min: 600, Max: 700},
	}
}

// Validate checks every band is ordered and sits inside its valid range
func (b IdealBands) Validate() error {
	for _, v := range Variables {
		band, ok := b[v]
		if !ok {
			return fmt.Errorf("%w: missing band for %s", ErrInvalidBand, v)
		}
		s, _ := SpecFor(v)
		if band.Min > band.Max {
			return fmt.Errorf("%w: %s lower %v above upper %v", ErrInvalidBand, v, band.Min, band.Max)
		}
		if !s.Valid.Contains(band.Min) || !s.Valid.Contains(band.Max) {
			return fmt.Errorf("%w: %s band [%v, %v] outside valid range", ErrInvalidBand, v, band.Min, band.Max)
		}
		if CheckKind(v, band.Min) != nil || CheckKind(v, band.Max) != nil {
			return fmt.Errorf("%w: %s band bounds must be integers", ErrInvalidBand, v)
		}
	}
	return nil
}

// Classify compares value against the band for v
func (b IdealBands) Classify(v Variable, value float64) (Warning, error) {
	band, ok := b[v]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariable, string(v))
	}
	switch {
	case value > band.Max:
		return WarningHigh, nil
	case value < band.Min:
		return WarningLow, nil
	}
	return WarningGood, nil
}
