package model

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	th := Thresholds{Warning: 70, Critical: 80}

	tests := []struct {
		name  string
		value float64
		want  Severity
	}{
		{"well below warning", 45, SevNormal},
		{"just below warning", 69.9, SevNormal},
		{"exactly warning", 70, SevWarning},
		{"between tiers", 75, SevWarning},
		{"just below critical", 79.9, SevWarning},
		{"exactly critical", 80, SevCritical},
		{"above critical", 95, SevCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := th.Classify(tt.value); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestClassifyMonotonic(t *testing.T) {
	th := Thresholds{Warning: 60, Critical: 85}
	prev := SevNormal
	for v := 0.0; v <= 100; v += 0.5 {
		got := th.Classify(v)
		if got < prev {
			t.Fatalf("severity dropped from %v to %v at value %v", prev, got, v)
		}
		prev = got
	}
}

func TestClassifyReadingAbsent(t *testing.T) {
	th := Thresholds{Warning: 70, Critical: 80}

	if got := th.ClassifyReading(Absent(QuantityCPUTemp, "°C")); got != SevUnknown {
		t.Errorf("absent reading classified as %v, want %v", got, SevUnknown)
	}
	// An absent reading holds Value 0, which would otherwise be normal;
	// unknown must win.
	r := Reading{Quantity: QuantityCPUTemp, Value: 0, Valid: false}
	if got := th.ClassifyReading(r); got != SevUnknown {
		t.Errorf("invalid zero reading classified as %v, want %v", got, SevUnknown)
	}

	if got := th.ClassifyReading(NewReading(QuantityCPUTemp, 85, "°C")); got != SevCritical {
		t.Errorf("valid reading classified as %v, want %v", got, SevCritical)
	}
}
