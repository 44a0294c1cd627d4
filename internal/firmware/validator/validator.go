package validator

import (
	"strings"

	"firmgen-server/internal/firmware/domain"
)

// Catalog is the read side of the capability registry.
type Catalog interface {
	FindSensor(sensorType string) (domain.SensorDescriptor, bool)
	FindBoard(id string) (domain.BoardProfile, bool)
}

func NewValidator(catalog Catalog) *Validator {
	return &Validator{catalog: catalog}
}

// Validator checks selection requests against the catalog. It holds no
// mutable state and may be shared between goroutines.
type Validator struct {
	catalog Catalog
}

type candidate struct {
	descriptor domain.SensorDescriptor
	selection  domain.SensorSelection
}

// Validate runs the checks in a fixed order and returns every diagnostic it
// finds, in detection order. Only unknown boards and empty selections stop
// the run early.
func (v *Validator) Validate(request domain.SelectionRequest) domain.ValidationOutcome {
	board, ok := v.catalog.FindBoard(request.BoardID)
	if !ok {
		return domain.Rejected([]domain.Diagnostic{
			domain.NewDiagnostic(domain.UnknownBoard, "Unsupported board: %s", request.BoardID),
		})
	}

	if len(request.Sensors) == 0 {
		return domain.Rejected([]domain.Diagnostic{
			domain.NewDiagnostic(domain.EmptySelection, "At least one sensor must be selected for board %s.", board.ID),
		})
	}

	var diagnostics []domain.Diagnostic

	candidates, found := v.checkSensors(board, request.Sensors)
	diagnostics = append(diagnostics, found...)

	resolved, found := resolvePins(board, candidates)
	diagnostics = append(diagnostics, found...)

	diagnostics = append(diagnostics, checkConflicts(resolved)...)

	if len(request.Sensors) > board.MaxSensors {
		diagnostics = append(diagnostics, domain.NewDiagnostic(domain.SensorCountExceeded,
			"Board %s supports at most %d sensors; %d selected.", board.ID, board.MaxSensors, len(request.Sensors)))
	}

	diagnostics = append(diagnostics, checkNetworking(board, request)...)

	if len(diagnostics) > 0 {
		return domain.Rejected(diagnostics)
	}

	return domain.Accepted(domain.NormalizedConfig{
		Board:   board,
		Sensors: resolved,
		Network: domain.NetworkSettings{
			MQTTEnabled:  request.MQTTEnabled,
			WiFiSSID:     request.WiFiSSID,
			WiFiPassword: request.WiFiPassword,
			MQTTBroker:   request.MQTTBroker,
		},
	})
}

func (v *Validator) checkSensors(board domain.BoardProfile, selections []domain.SensorSelection) ([]candidate, []domain.Diagnostic) {
	var diagnostics []domain.Diagnostic
	candidates := make([]candidate, 0, len(selections))
	seen := make(map[string]bool, len(selections))

	for _, selection := range selections {
		descriptor, ok := v.catalog.FindSensor(selection.Type)
		if !ok {
			diagnostics = append(diagnostics, domain.NewDiagnostic(domain.UnknownSensorType,
				"Unsupported sensor: %s", selection.Type))
			continue
		}

		accepted := true
		if !descriptor.SupportsBoard(board.ID) {
			diagnostics = append(diagnostics, domain.NewDiagnostic(domain.UnsupportedSensorForBoard,
				"Sensor %s is not supported on board %s.", descriptor.Type, board.ID))
			accepted = false
		}

		if seen[descriptor.Type] {
			diagnostics = append(diagnostics, domain.NewDiagnostic(domain.DuplicateSensorSelection,
				"Sensor %s is selected more than once.", descriptor.Type))
			accepted = false
		}
		seen[descriptor.Type] = true

		if !accepted {
			continue
		}

		candidates = append(candidates, candidate{descriptor: descriptor, selection: selection})
	}

	return candidates, diagnostics
}

func resolvePins(board domain.BoardProfile, candidates []candidate) ([]domain.ResolvedSensor, []domain.Diagnostic) {
	var diagnostics []domain.Diagnostic
	resolved := make([]domain.ResolvedSensor, 0, len(candidates))

	for _, c := range candidates {
		descriptor := c.descriptor

		var explicit *domain.Pin
		if hasPinText(c.selection.Pin) {
			pin, err := ParsePin(*c.selection.Pin)
			if err != nil {
				diagnostics = append(diagnostics, domain.NewDiagnostic(domain.InvalidPinValue,
					"Invalid pin value %q for sensor %s.", *c.selection.Pin, descriptor.Type))
				continue
			}
			explicit = &pin
		}

		if descriptor.UsesBus() && !descriptor.RequiresPin {
			bus, ok := board.PrimaryBus()
			if !ok {
				diagnostics = append(diagnostics, domain.NewDiagnostic(domain.PinCapabilityMismatch,
					"Board %s has no bus channel; required for bus sensor %s.", board.ID, descriptor.Type))
				continue
			}
			resolved = append(resolved, domain.ResolvedSensor{Descriptor: descriptor, Bus: &bus})
			continue
		}

		if !descriptor.RequiresPin {
			resolved = append(resolved, domain.ResolvedSensor{Descriptor: descriptor})
			continue
		}

		pin := explicit
		if pin == nil && descriptor.DefaultPin != nil {
			fallback := *descriptor.DefaultPin
			pin = &fallback
		}
		if pin == nil {
			diagnostics = append(diagnostics, domain.NewDiagnostic(domain.MissingRequiredPin,
				"Sensor %s requires a pin.", descriptor.Type))
			continue
		}

		if !board.HasPin(descriptor.PinClass, *pin) {
			diagnostics = append(diagnostics, domain.NewDiagnostic(domain.PinCapabilityMismatch,
				"Pin %s is not %s-capable for board %s; required for %s sensor %s.",
				pin, descriptor.PinClass, board.ID, descriptor.PinClass, descriptor.Type))
			continue
		}

		resolved = append(resolved, domain.ResolvedSensor{Descriptor: descriptor, Pin: pin})
	}

	return resolved, diagnostics
}

// hasPinText reports whether a pin was given. Blank text counts as no pin.
func hasPinText(raw *string) bool {
	return raw != nil && strings.TrimSpace(*raw) != ""
}

type claim struct {
	owner string
	bus   string
}

// checkConflicts reports the second claimant of any pin. Sensors sharing a
// bus channel do not conflict with each other.
func checkConflicts(resolved []domain.ResolvedSensor) []domain.Diagnostic {
	var diagnostics []domain.Diagnostic
	claims := make(map[domain.Pin]claim)

	for _, sensor := range resolved {
		switch {
		case sensor.Pin != nil:
			if existing, taken := claims[*sensor.Pin]; taken {
				diagnostics = append(diagnostics, conflict(*sensor.Pin, existing.owner, sensor.Descriptor.Type))
				continue
			}
			claims[*sensor.Pin] = claim{owner: sensor.Descriptor.Type}

		case sensor.Bus != nil:
			conflicted := false
			for _, pin := range sensor.Bus.Pins() {
				existing, taken := claims[pin]
				if taken && existing.bus != sensor.Bus.Name {
					diagnostics = append(diagnostics, conflict(pin, existing.owner, sensor.Descriptor.Type))
					conflicted = true
					break
				}
			}
			if conflicted {
				continue
			}
			for _, pin := range sensor.Bus.Pins() {
				if _, taken := claims[pin]; !taken {
					claims[pin] = claim{owner: sensor.Descriptor.Type, bus: sensor.Bus.Name}
				}
			}
		}
	}

	return diagnostics
}

func conflict(pin domain.Pin, owner, sensorType string) domain.Diagnostic {
	return domain.NewDiagnostic(domain.PinConflict, "Pin conflict: pin %s already used by %s; requested by %s.", pin, owner, sensorType)
}

func checkNetworking(board domain.BoardProfile, request domain.SelectionRequest) []domain.Diagnostic {
	if !request.RequestsNetworking() {
		return nil
	}

	if !board.SupportsNetworking {
		return []domain.Diagnostic{
			domain.NewDiagnostic(domain.UnsupportedBoardFeature,
				"Board %s does not support networking; Wi-Fi and MQTT settings cannot be applied.", board.ID),
		}
	}

	if !request.MQTTEnabled {
		return nil
	}

	var diagnostics []domain.Diagnostic
	if request.WiFiSSID == "" {
		diagnostics = append(diagnostics, domain.NewDiagnostic(domain.MissingNetworkCredential,
			"WiFi SSID is required when MQTT is enabled."))
	}
	if request.WiFiPassword == "" {
		diagnostics = append(diagnostics, domain.NewDiagnostic(domain.MissingNetworkCredential,
			"WiFi password is required when MQTT is enabled."))
	}
	if request.MQTTBroker == "" {
		diagnostics = append(diagnostics, domain.NewDiagnostic(domain.MissingNetworkCredential,
			"MQTT broker is required when MQTT is enabled."))
	}
	return diagnostics
}
