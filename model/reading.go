package model

import "time"

// Quantity identifies one tracked metric stream.
type Quantity string

const (
	QuantityCPUTemp  Quantity = "cpu_temp"
	QuantityGPUTemp  Quantity = "gpu_temp"
	QuantityCPUUsage Quantity = "cpu_usage"
	QuantityGPUUsage Quantity = "gpu_usage"
	QuantityGPUVRAM  Quantity = "gpu_vram"
	QuantityGPUPower Quantity = "gpu_power"
)

// Reading is one normalized metric value with a timestamp.
// Valid=false means the sensor or tool was unavailable for this tick;
// it is never conflated with a zero value.
type Reading struct {
	Quantity  Quantity
	Value     float64
	Valid     bool
	Unit      string
	Timestamp time.Time
}

// NewReading builds a valid reading stamped with the current time.
func NewReading(q Quantity, value float64, unit string) Reading {
	return Reading{Quantity: q, Value: value, Valid: true, Unit: unit, Timestamp: time.Now()}
}

// Absent builds a reading that records "no data" for this tick.
func Absent(q Quantity, unit string) Reading {
	return Reading{Quantity: q, Unit: unit, Timestamp: time.Now()}
}
