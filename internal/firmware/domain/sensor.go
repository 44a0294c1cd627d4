package domain

import "slices"

// SensorDescriptor describes a sensor kind the service knows how to wire.
// Descriptors are created once with the registry and never mutated.
type SensorDescriptor struct {
	Type        string
	RequiresPin bool
	DefaultPin  *Pin
	PinClass    PinClass
	// CompatibleBoards lists board ids; empty means every board.
	CompatibleBoards []string
	StrategyID       StrategyID
	Quantities       []Quantity
	Libraries        []string
}

// Clone returns a copy that shares no memory with d.
func (d SensorDescriptor) Clone() SensorDescriptor {
	if d.DefaultPin != nil {
		d.DefaultPin = d.DefaultPin.Ptr()
	}
	d.CompatibleBoards = slices.Clone(d.CompatibleBoards)
	d.Quantities = slices.Clone(d.Quantities)
	d.Libraries = slices.Clone(d.Libraries)
	return d
}

func (d SensorDescriptor) SupportsBoard(boardID string) bool {
	if len(d.CompatibleBoards) == 0 {
		return true
	}
	return slices.Contains(d.CompatibleBoards, boardID)
}

func (d SensorDescriptor) UsesBus() bool {
	return d.PinClass == PinClassBus
}
