package domain_test

import (
	"firmgen-server/internal/firmware/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NormalizedConfig", func() {
	var config domain.NormalizedConfig

	BeforeEach(func() {
		config = domain.NormalizedConfig{
			Board: domain.BoardProfile{ID: "ESP32", SupportsNetworking: true, MaxSensors: 8},
			Sensors: []domain.ResolvedSensor{
				{
					Descriptor: domain.SensorDescriptor{Type: "DHT22", RequiresPin: true, PinClass: domain.PinClassDigital},
					Pin:        domain.Pin(4).Ptr(),
				},
			},
			Network: domain.NetworkSettings{MQTTEnabled: true, WiFiSSID: "lab", MQTTBroker: "broker.local"},
		}
	})

	Context("Fingerprint", func() {
		It("should be stable for equal configurations", func() {
			first, err := config.Fingerprint()
			Expect(err).NotTo(HaveOccurred())

			copied := config
			copied.Sensors = append([]domain.ResolvedSensor(nil), config.Sensors...)
			second, err := copied.Fingerprint()
			Expect(err).NotTo(HaveOccurred())

			Expect(first).To(HaveLen(64))
			Expect(second).To(Equal(first))
		})

		It("should change when the wiring changes", func() {
			first, err := config.Fingerprint()
			Expect(err).NotTo(HaveOccurred())

			config.Sensors[0].Pin = domain.Pin(5).Ptr()
			second, err := config.Fingerprint()
			Expect(err).NotTo(HaveOccurred())

			Expect(second).NotTo(Equal(first))
		})
	})

	Context("NetworkingEnabled", func() {
		It("should require mqtt and a networking board", func() {
			Expect(config.NetworkingEnabled()).To(BeTrue())

			config.Board.SupportsNetworking = false
			Expect(config.NetworkingEnabled()).To(BeFalse())
		})
	})
})

var _ = Describe("DiagnosticKind", func() {
	It("should round trip through its name", func() {
		text, err := domain.PinConflict.MarshalText()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(text)).To(Equal("PinConflict"))

		var kind domain.DiagnosticKind
		Expect(kind.UnmarshalText(text)).To(Succeed())
		Expect(kind).To(Equal(domain.PinConflict))
	})

	It("should reject unknown names", func() {
		_, err := domain.ParseDiagnosticKind("NotAKind")
		Expect(err).To(MatchError(domain.ErrUnknownDiagnosticKind))
	})
})

var _ = Describe("BoardProfile", func() {
	board := domain.BoardProfile{
		DigitalPins: []domain.Pin{4, 5},
		AnalogPins:  []domain.Pin{34},
		BusChannels: []domain.BusChannel{{Name: "i2c0", SDA: 21, SCL: 22}},
	}

	DescribeTable("HasPin",
		func(class domain.PinClass, pin domain.Pin, expected bool) {
			Expect(board.HasPin(class, pin)).To(Equal(expected))
		},
		Entry("digital pin in set", domain.PinClassDigital, domain.Pin(4), true),
		Entry("analog pin used as digital", domain.PinClassDigital, domain.Pin(34), false),
		Entry("analog pin in set", domain.PinClassAnalog, domain.Pin(34), true),
		Entry("bus sda", domain.PinClassBus, domain.Pin(21), true),
		Entry("bus unknown", domain.PinClassBus, domain.Pin(4), false),
	)
})
