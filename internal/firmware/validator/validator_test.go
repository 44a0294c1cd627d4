package validator_test

import (
	"firmgen-server/internal/firmware/domain"
	"firmgen-server/internal/firmware/registry"
	"firmgen-server/internal/firmware/synthesis"
	"firmgen-server/internal/firmware/validator"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func pin(value string) *string {
	return &value
}

func kinds(outcome domain.ValidationOutcome) []domain.DiagnosticKind {
	result := make([]domain.DiagnosticKind, 0)
	for _, d := range outcome.Diagnostics() {
		result = append(result, d.Kind)
	}
	return result
}

var _ = ginkgo.Describe("Validator", func() {
	var v *validator.Validator

	ginkgo.BeforeEach(func() {
		v = validator.NewValidator(registry.MustNew(registry.Catalog(), synthesis.NewSynthesizer()))
	})

	ginkgo.Context("scenarios", func() {
		ginkgo.It("should accept a DHT22 on pin 4 with a BMP280 on the bus", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID: "ESP32",
				Sensors: []domain.SensorSelection{
					{Type: "DHT22", Pin: pin("4")},
					{Type: "BMP280"},
				},
			})

			gomega.Expect(outcome.IsAccepted()).To(gomega.BeTrue())
			config, ok := outcome.Config()
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(config.Sensors).To(gomega.HaveLen(2))
			gomega.Expect(*config.Sensors[0].Pin).To(gomega.Equal(domain.Pin(4)))
			gomega.Expect(config.Sensors[1].Bus.Name).To(gomega.Equal("i2c0"))
			gomega.Expect(config.NetworkingEnabled()).To(gomega.BeFalse())
		})

		ginkgo.It("should reject two sensors on the same pin", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID: "ESP32",
				Sensors: []domain.SensorSelection{
					{Type: "DHT22", Pin: pin("4")},
					{Type: "MQ135", Pin: pin("4")},
				},
			})

			gomega.Expect(outcome.IsAccepted()).To(gomega.BeFalse())
			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{domain.PinConflict}))
			gomega.Expect(outcome.Messages()[0]).To(gomega.ContainSubstring("already used by DHT22"))
		})

		ginkgo.It("should reject networking on a board without it", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID:     "ArduinoUno",
				Sensors:     []domain.SensorSelection{{Type: "DHT22"}},
				MQTTEnabled: true,
				WiFiSSID:    "x",
			})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{domain.UnsupportedBoardFeature}))
		})

		ginkgo.It("should reject an empty selection", func() {
			outcome := v.Validate(domain.SelectionRequest{BoardID: "ESP32"})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{domain.EmptySelection}))
			_, ok := outcome.Config()
			gomega.Expect(ok).To(gomega.BeFalse())
		})

		ginkgo.It("should reject an unknown sensor type", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID: "ESP32",
				Sensors: []domain.SensorSelection{{Type: "UnknownType"}},
			})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{domain.UnknownSensorType}))
			gomega.Expect(outcome.Messages()).To(gomega.Equal([]string{"Unsupported sensor: UnknownType"}))
		})
	})

	ginkgo.Context("board resolution", func() {
		ginkgo.It("should stop at an unknown board", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID: "STM32",
				Sensors: []domain.SensorSelection{{Type: "Nope"}},
			})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{domain.UnknownBoard}))
			gomega.Expect(outcome.Messages()).To(gomega.Equal([]string{"Unsupported board: STM32"}))
		})
	})

	ginkgo.Context("sensor checks", func() {
		ginkgo.It("should accumulate diagnostics in selection order", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID: "ArduinoUno",
				Sensors: []domain.SensorSelection{
					{Type: "Foo"},
					{Type: "MQ135"},
					{Type: "DHT22"},
					{Type: "DHT22", Pin: pin("5")},
				},
			})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{
				domain.UnknownSensorType,
				domain.UnsupportedSensorForBoard,
				domain.DuplicateSensorSelection,
			}))
		})
	})

	ginkgo.Context("pin resolution", func() {
		ginkgo.It("should fall back to the default pin", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID: "ESP32",
				Sensors: []domain.SensorSelection{{Type: "DHT22"}},
			})

			config, ok := outcome.Config()
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(*config.Sensors[0].Pin).To(gomega.Equal(domain.Pin(4)))
		})

		ginkgo.It("should require a pin when no default exists", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID: "ESP32",
				Sensors: []domain.SensorSelection{{Type: "LDR"}},
			})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{domain.MissingRequiredPin}))
			gomega.Expect(outcome.Messages()).To(gomega.Equal([]string{"Sensor LDR requires a pin."}))
		})

		ginkgo.DescribeTable("pin values",
			func(sensorType, raw string, expected []domain.DiagnosticKind) {
				outcome := v.Validate(domain.SelectionRequest{
					BoardID: "ESP32",
					Sensors: []domain.SensorSelection{{Type: sensorType, Pin: pin(raw)}},
				})
				gomega.Expect(kinds(outcome)).To(gomega.Equal(expected))
			},
			ginkgo.Entry("analog pin accepted", "LDR", "34", []domain.DiagnosticKind{}),
			ginkgo.Entry("gpio prefix accepted", "LDR", "GPIO34", []domain.DiagnosticKind{}),
			ginkgo.Entry("pin outside the analog set", "LDR", "1", []domain.DiagnosticKind{domain.PinCapabilityMismatch}),
			ginkgo.Entry("input-only pin used as digital", "DHT22", "34", []domain.DiagnosticKind{domain.PinCapabilityMismatch}),
			ginkgo.Entry("not a number", "DHT22", "D4", []domain.DiagnosticKind{domain.InvalidPinValue}),
			ginkgo.Entry("negative", "DHT22", "-4", []domain.DiagnosticKind{domain.InvalidPinValue}),
			ginkgo.Entry("out of range", "DHT22", "300", []domain.DiagnosticKind{domain.InvalidPinValue}),
			ginkgo.Entry("empty falls back to the default", "DHT22", "", []domain.DiagnosticKind{}),
			ginkgo.Entry("blank falls back to the default", "DHT22", "   ", []domain.DiagnosticKind{}),
			ginkgo.Entry("blank without a default", "LDR", " ", []domain.DiagnosticKind{domain.MissingRequiredPin}),
			ginkgo.Entry("explicit pin on a bus sensor is ignored", "BMP280", "4", []domain.DiagnosticKind{}),
			ginkgo.Entry("invalid pin on a bus sensor", "BMP280", "x", []domain.DiagnosticKind{domain.InvalidPinValue}),
		)
	})

	ginkgo.Context("pin conflicts", func() {
		ginkgo.It("should treat an explicit pin equal to another default as a conflict", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID: "ESP32",
				Sensors: []domain.SensorSelection{
					{Type: "DHT22"},
					{Type: "LDR", Pin: pin("4")},
				},
			})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{domain.PinConflict}))
			gomega.Expect(outcome.Messages()[0]).To(gomega.ContainSubstring("requested by LDR"))
		})

		ginkgo.It("should attribute a conflict with the bus to the later sensor", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID: "ESP32",
				Sensors: []domain.SensorSelection{
					{Type: "BMP280"},
					{Type: "DHT22", Pin: pin("21")},
				},
			})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{domain.PinConflict}))
			gomega.Expect(outcome.Messages()[0]).To(gomega.Equal("Pin conflict: pin 21 already used by BMP280; requested by DHT22."))
		})

		ginkgo.It("should detect a bus sensor landing on a claimed pin", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID: "ArduinoUno",
				Sensors: []domain.SensorSelection{
					{Type: "LDR", Pin: pin("18")},
					{Type: "BMP280"},
				},
			})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{domain.PinConflict}))
			gomega.Expect(outcome.Messages()[0]).To(gomega.ContainSubstring("requested by BMP280"))
		})
	})

	ginkgo.Context("sensor count", func() {
		ginkgo.It("should reject more sensors than the board supports", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID: "ESP8266",
				Sensors: []domain.SensorSelection{
					{Type: "DHT22", Pin: pin("12")},
					{Type: "BMP280"},
					{Type: "MQ135", Pin: pin("17")},
					{Type: "Foo"},
					{Type: "Bar"},
				},
			})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{
				domain.UnknownSensorType,
				domain.UnknownSensorType,
				domain.SensorCountExceeded,
			}))
		})
	})

	ginkgo.Context("networking", func() {
		ginkgo.It("should gate any connectivity field on boards without networking", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID:    "ArduinoUno",
				Sensors:    []domain.SensorSelection{{Type: "DHT22"}},
				MQTTBroker: "broker.local",
			})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{domain.UnsupportedBoardFeature}))
		})

		ginkgo.It("should require every credential when mqtt is enabled", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID:     "ESP32",
				Sensors:     []domain.SensorSelection{{Type: "DHT22"}},
				MQTTEnabled: true,
			})

			gomega.Expect(kinds(outcome)).To(gomega.Equal([]domain.DiagnosticKind{
				domain.MissingNetworkCredential,
				domain.MissingNetworkCredential,
				domain.MissingNetworkCredential,
			}))
			gomega.Expect(outcome.Messages()).To(gomega.Equal([]string{
				"WiFi SSID is required when MQTT is enabled.",
				"WiFi password is required when MQTT is enabled.",
				"MQTT broker is required when MQTT is enabled.",
			}))
		})

		ginkgo.It("should reject mqtt with an empty wifi password", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID:     "ESP32",
				Sensors:     []domain.SensorSelection{{Type: "DHT22"}},
				MQTTEnabled: true,
				WiFiSSID:    "lab",
				MQTTBroker:  "b",
			})

			gomega.Expect(outcome.IsAccepted()).To(gomega.BeFalse())
			gomega.Expect(outcome.Messages()).To(gomega.Equal([]string{"WiFi password is required when MQTT is enabled."}))
		})

		ginkgo.It("should accept mqtt with complete settings", func() {
			outcome := v.Validate(domain.SelectionRequest{
				BoardID:      "PicoW",
				Sensors:      []domain.SensorSelection{{Type: "LDR", Pin: pin("GP26")}},
				MQTTEnabled:  true,
				WiFiSSID:     "lab",
				WiFiPassword: "secret",
				MQTTBroker:   "broker.local:1884",
			})

			config, ok := outcome.Config()
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(config.NetworkingEnabled()).To(gomega.BeTrue())
		})
	})
})

var _ = ginkgo.Describe("ParsePin", func() {
	ginkgo.DescribeTable("accepted forms",
		func(raw string, expected domain.Pin) {
			parsed, err := validator.ParsePin(raw)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(parsed).To(gomega.Equal(expected))
		},
		ginkgo.Entry("plain", "4", domain.Pin(4)),
		ginkgo.Entry("padded", " 21 ", domain.Pin(21)),
		ginkgo.Entry("gpio upper", "GPIO15", domain.Pin(15)),
		ginkgo.Entry("gpio lower", "gpio2", domain.Pin(2)),
		ginkgo.Entry("pico style", "GP26", domain.Pin(26)),
	)

	ginkgo.It("should wrap ErrInvalidPin", func() {
		_, err := validator.ParsePin("GPIO")
		gomega.Expect(err).To(gomega.MatchError(validator.ErrInvalidPin))
	})
})
