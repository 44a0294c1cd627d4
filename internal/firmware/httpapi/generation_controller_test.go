package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"firmgen-server/internal/firmware/domain"
	"firmgen-server/internal/firmware/httpapi"
	"firmgen-server/internal/firmware/usecases"
	mockusecases "firmgen-server/test/unit/doubles/firmware/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("GenerationController", func() {
	var (
		ctrl        *gomock.Controller
		mockService *mockusecases.MockGenerationService
		router      *http.ServeMux
		recorder    *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockService = mockusecases.NewMockGenerationService(ctrl)
		router = http.NewServeMux()
		httpapi.NewGenerationController(mockService).AddRoutes(router)
		recorder = httptest.NewRecorder()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	post := func(body string) {
		request := httptest.NewRequest(http.MethodPost, "/generate-code", strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, request)
	}

	Context("catalog", func() {
		It("lists sensors with their default pins", func() {
			mockService.EXPECT().ListSensors(gomock.Any()).Return([]domain.SensorDescriptor{
				{Type: "DHT22", RequiresPin: true, DefaultPin: domain.Pin(4).Ptr(), PinClass: domain.PinClassDigital,
					Quantities: []domain.Quantity{domain.QuantityTemperature, domain.QuantityHumidity}},
				{Type: "BMP280", PinClass: domain.PinClassBus, Quantities: []domain.Quantity{domain.QuantityPressure}},
			})

			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/sensors", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body []map[string]any
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body).To(HaveLen(2))
			Expect(body[0]["type"]).To(Equal("DHT22"))
			Expect(body[0]["default_pin"]).To(BeNumerically("==", 4))
			Expect(body[0]["quantities"]).To(ConsistOf("temperature", "humidity"))
			Expect(body[1]).NotTo(HaveKey("default_pin"))
			Expect(body[1]["pin_class"]).To(Equal("bus"))
		})

		It("lists boards with their bus channels", func() {
			mockService.EXPECT().ListBoards(gomock.Any()).Return([]domain.BoardProfile{
				{
					ID:                 "ESP32",
					SupportsNetworking: true,
					MaxSensors:         8,
					DigitalPins:        []domain.Pin{4, 5},
					AnalogPins:         []domain.Pin{34},
					BusChannels:        []domain.BusChannel{{Name: "I2C0", SDA: 21, SCL: 22}},
				},
			})

			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/boards", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"bus_channels":[{"name":"I2C0","sda":21,"scl":22}]`))
			Expect(recorder.Body.String()).To(ContainSubstring(`"supports_networking":true`))
		})
	})

	Context("generateCode", func() {
		record := domain.BuildRecord{
			ID:          domain.ID("build-1"),
			Fingerprint: "abc123",
			BoardID:     "ESP32",
			Sensors:     []string{"DHT22"},
			Source:      "void setup() {}\n",
			Manifest:    "[env:esp32dev]\n",
		}

		It("returns the generated code for an accepted selection", func() {
			mockService.EXPECT().
				Generate(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ any, request domain.SelectionRequest) (domain.BuildRecord, error) {
					Expect(request.BoardID).To(Equal("ESP32"))
					Expect(request.Sensors).To(HaveLen(1))
					Expect(*request.Sensors[0].Pin).To(Equal("4"))
					return record, nil
				})

			post(`{"sensors":[{"type":"DHT22","pin":4}]}`)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body map[string]string
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body).To(Equal(map[string]string{
				"code":           "void setup() {}\n",
				"platformio_ini": "[env:esp32dev]\n",
				"fingerprint":    "abc123",
				"build_id":       "build-1",
			}))
		})

		It("uses mcu when board is absent and keeps textual pins", func() {
			mockService.EXPECT().
				Generate(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ any, request domain.SelectionRequest) (domain.BuildRecord, error) {
					Expect(request.BoardID).To(Equal("ESP8266"))
					Expect(*request.Sensors[0].Pin).To(Equal("D4"))
					Expect(*request.Sensors[1].Pin).To(Equal("true"))
					Expect(request.Sensors[2].Pin).To(BeNil())
					Expect(request.Sensors[3].Pin).To(BeNil())
					Expect(request.MQTTEnabled).To(BeTrue())
					Expect(request.WiFiSSID).To(Equal("lab"))
					return record, nil
				})

			post(`{"mcu":"ESP8266","mqtt_enabled":true,"wifi_ssid":"lab","sensors":[
				{"type":"DHT22","pin":"D4"},
				{"type":"LDR","pin":true},
				{"type":"BMP280","pin":null},
				{"type":"MQ135","pin":"  "}]}`)

			Expect(recorder.Code).To(Equal(http.StatusOK))
		})

		It("prefers board over mcu", func() {
			mockService.EXPECT().
				Generate(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ any, request domain.SelectionRequest) (domain.BuildRecord, error) {
					Expect(request.BoardID).To(Equal("UNO"))
					return record, nil
				})

			post(`{"mcu":"ESP32","board":"UNO","sensors":[{"type":"LDR"}]}`)

			Expect(recorder.Code).To(Equal(http.StatusOK))
		})

		It("answers 400 with the diagnostics in order when the selection is rejected", func() {
			mockService.EXPECT().
				Generate(gomock.Any(), gomock.Any()).
				Return(domain.BuildRecord{}, &usecases.RejectionError{Diagnostics: []domain.Diagnostic{
					domain.NewDiagnostic(domain.UnknownSensorType, "Unsupported sensor: %s", "FOO"),
					domain.NewDiagnostic(domain.DuplicateSensorSelection, "Sensor %s is selected more than once.", "DHT22"),
				}})

			post(`{"sensors":[{"type":"FOO"},{"type":"DHT22"},{"type":"DHT22"}]}`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			var body struct {
				SemanticErrors []string `json:"semantic_errors"`
				Diagnostics    []struct {
					Kind    string `json:"kind"`
					Message string `json:"message"`
				} `json:"diagnostics"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body.SemanticErrors).To(Equal([]string{
				"Unsupported sensor: FOO",
				"Sensor DHT22 is selected more than once.",
			}))
			Expect(body.Diagnostics[0].Kind).To(Equal("UnknownSensorType"))
			Expect(body.Diagnostics[1].Kind).To(Equal("DuplicateSensorSelection"))
		})

		It("answers 400 for a malformed body without calling the service", func() {
			post(`{"sensors":[`)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(recorder.Body.String()).To(ContainSubstring("malformed request body"))
		})

		It("answers 500 when generation fails", func() {
			mockService.EXPECT().
				Generate(gomock.Any(), gomock.Any()).
				Return(domain.BuildRecord{}, errors.New("disk full"))

			post(`{"sensors":[{"type":"DHT22"}]}`)

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			Expect(recorder.Body.String()).NotTo(ContainSubstring("disk full"))
		})
	})

	Context("getBuild", func() {
		It("returns a stored build", func() {
			createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			mockService.EXPECT().
				GetBuild(gomock.Any(), domain.ID("build-1")).
				Return(domain.BuildRecord{
					ID:          "build-1",
					Fingerprint: "abc123",
					BoardID:     "ESP32",
					Sensors:     []string{"DHT22", "LDR"},
					MQTTEnabled: true,
					CreatedAt:   createdAt,
				}, nil)

			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/builds/build-1", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body map[string]any
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body["id"]).To(Equal("build-1"))
			Expect(body["sensors"]).To(ConsistOf("DHT22", "LDR"))
			Expect(body["mqtt_enabled"]).To(BeTrue())
			Expect(body["created_at"]).To(Equal("2026-03-01T12:00:00Z"))
		})

		It("answers 404 for an unknown build", func() {
			mockService.EXPECT().
				GetBuild(gomock.Any(), domain.ID("missing")).
				Return(domain.BuildRecord{}, usecases.ErrBuildNotFound)

			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/builds/missing", nil))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("answers 500 on repository errors", func() {
			mockService.EXPECT().
				GetBuild(gomock.Any(), domain.ID("build-1")).
				Return(domain.BuildRecord{}, errors.New("connection reset"))

			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/builds/build-1", nil))

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
