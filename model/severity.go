package model

// Severity classifies a value against a threshold pair.
type Severity int

const (
	SevNormal Severity = iota
	SevWarning
	SevCritical
	// SevUnknown marks an absent value; it is rendered neutrally and is
	// not comparable with the other tiers.
	SevUnknown
)

func (s Severity) String() string {
	switch s {
	case SevNormal:
		return "normal"
	case SevWarning:
		return "warning"
	case SevCritical:
		return "critical"
	}
	return "unknown"
}

// Thresholds is a (warning, critical) pair for one quantity class.
type Thresholds struct {
	Warning  float64
	Critical float64
}

// Classify maps a value to a severity tier. Boundaries are inclusive on
// the upper side: value == Warning classifies as warning and value ==
// Critical as critical, so a sensor sitting exactly on a threshold alerts.
func (t Thresholds) Classify(value float64) Severity {
	switch {
	case value >= t.Critical:
		return SevCritical
	case value >= t.Warning:
		return SevWarning
	default:
		return SevNormal
	}
}

// ClassifyReading classifies a reading; absent readings are SevUnknown.
func (t Thresholds) ClassifyReading(r Reading) Severity {
	if !r.Valid {
		return SevUnknown
	}
	return t.Classify(r.Value)
}

// PercentTiers colors utilization percentages: below 50 is fine, 75 and
// above is critical.
var PercentTiers = Thresholds{Warning: 50, Critical: 75}
