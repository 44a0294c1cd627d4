package domain

import (
	"fmt"
	"strings"
)

type DiagnosticKind uint8

const (
	UnknownDiagnostic DiagnosticKind = iota
	UnknownBoard
	EmptySelection
	UnknownSensorType
	UnsupportedSensorForBoard
	DuplicateSensorSelection
	InvalidPinValue
	MissingRequiredPin
	PinCapabilityMismatch
	PinConflict
	SensorCountExceeded
	UnsupportedBoardFeature
	MissingNetworkCredential
)

var kindNames = map[DiagnosticKind]string{
	UnknownDiagnostic:         "Unknown",
	UnknownBoard:              "UnknownBoard",
	EmptySelection:            "EmptySelection",
	UnknownSensorType:         "UnknownSensorType",
	UnsupportedSensorForBoard: "UnsupportedSensorForBoard",
	DuplicateSensorSelection:  "DuplicateSensorSelection",
	InvalidPinValue:           "InvalidPinValue",
	MissingRequiredPin:        "MissingRequiredPin",
	PinCapabilityMismatch:     "PinCapabilityMismatch",
	PinConflict:               "PinConflict",
	SensorCountExceeded:       "SensorCountExceeded",
	UnsupportedBoardFeature:   "UnsupportedBoardFeature",
	MissingNetworkCredential:  "MissingNetworkCredential",
}

func (k DiagnosticKind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return kindNames[UnknownDiagnostic]
	}
	return name
}

func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DiagnosticKind) UnmarshalText(text []byte) error {
	parsed, err := ParseDiagnosticKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func ParseDiagnosticKind(value string) (DiagnosticKind, error) {
	for kind, name := range kindNames {
		if kind != UnknownDiagnostic && strings.EqualFold(name, value) {
			return kind, nil
		}
	}
	return UnknownDiagnostic, fmt.Errorf("%w: %q", ErrUnknownDiagnosticKind, value)
}

// Diagnostic is a single semantic finding. Messages are stable so clients can
// display them verbatim.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
}

func NewDiagnostic(kind DiagnosticKind, format string, args ...any) Diagnostic {
	return Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
