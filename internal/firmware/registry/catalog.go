package registry

import "firmgen-server/internal/firmware/domain"

const (
	BoardESP32      = "ESP32"
	BoardESP8266    = "ESP8266"
	BoardArduinoUno = "ArduinoUno"
	BoardPicoW      = "PicoW"
)

// Catalog returns the sensors and boards the service ships with.
func Catalog() Definitions {
	return Definitions{
		Sensors: []domain.SensorDescriptor{
			{
				Type:        "DHT22",
				RequiresPin: true,
				DefaultPin:  domain.Pin(4).Ptr(),
				PinClass:    domain.PinClassDigital,
				StrategyID:  "dht",
				Quantities:  []domain.Quantity{domain.QuantityTemperature, domain.QuantityHumidity},
				Libraries:   []string{"adafruit/DHT sensor library@^1.4.6", "adafruit/Adafruit Unified Sensor@^1.1.14"},
			},
			{
				Type:       "BMP280",
				PinClass:   domain.PinClassBus,
				StrategyID: "bmp280",
				Quantities: []domain.Quantity{domain.QuantityPressure},
				Libraries:  []string{"adafruit/Adafruit BMP280 Library@^2.6.8", "adafruit/Adafruit Unified Sensor@^1.1.14"},
			},
			{
				Type:             "MQ135",
				RequiresPin:      true,
				DefaultPin:       domain.Pin(34).Ptr(),
				PinClass:         domain.PinClassAnalog,
				CompatibleBoards: []string{BoardESP32, BoardESP8266},
				StrategyID:       "mq135",
				Quantities:       []domain.Quantity{domain.QuantityGas},
				Libraries:        []string{"phoenix1747/MQ135@^1.1.1"},
			},
			{
				Type:        "LDR",
				RequiresPin: true,
				PinClass:    domain.PinClassAnalog,
				StrategyID:  "analog_light",
				Quantities:  []domain.Quantity{domain.QuantityLight},
			},
		},
		Boards: []domain.BoardProfile{
			{
				ID:                 BoardESP32,
				DigitalPins:        pins(0, 2, 4, 5, 12, 13, 14, 15, 16, 17, 18, 19, 21, 22, 23, 25, 26, 27, 32, 33),
				AnalogPins:         pins(0, 2, 4, 12, 13, 14, 15, 25, 26, 27, 32, 33, 34, 35, 36, 39),
				BusChannels:        []domain.BusChannel{{Name: "i2c0", SDA: 21, SCL: 22}},
				MaxSensors:         8,
				SupportsNetworking: true,
				StrategyID:         "esp32",
				Platform: domain.Platform{
					Env:         "esp32dev",
					Platform:    "espressif32",
					Board:       "esp32dev",
					Framework:   "arduino",
					MonitorBaud: 115200,
				},
			},
			{
				ID:                 BoardESP8266,
				DigitalPins:        pins(0, 2, 4, 5, 12, 13, 14, 15, 16),
				AnalogPins:         pins(17),
				BusChannels:        []domain.BusChannel{{Name: "i2c0", SDA: 4, SCL: 5}},
				MaxSensors:         4,
				SupportsNetworking: true,
				StrategyID:         "esp8266",
				Platform: domain.Platform{
					Env:         "nodemcuv2",
					Platform:    "espressif8266",
					Board:       "nodemcuv2",
					Framework:   "arduino",
					MonitorBaud: 115200,
				},
			},
			{
				ID:          BoardArduinoUno,
				DigitalPins: pins(2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13),
				AnalogPins:  pins(14, 15, 16, 17, 18, 19),
				BusChannels: []domain.BusChannel{{Name: "i2c0", SDA: 18, SCL: 19}},
				MaxSensors:  4,
				StrategyID:  "avr",
				Platform: domain.Platform{
					Env:         "uno",
					Platform:    "atmelavr",
					Board:       "uno",
					Framework:   "arduino",
					MonitorBaud: 9600,
				},
			},
			{
				ID:                 BoardPicoW,
				DigitalPins:        pinRange(0, 22),
				AnalogPins:         pins(26, 27, 28),
				BusChannels:        []domain.BusChannel{{Name: "i2c0", SDA: 4, SCL: 5}},
				MaxSensors:         6,
				SupportsNetworking: true,
				StrategyID:         "rp2040",
				Platform: domain.Platform{
					Env:         "rpipicow",
					Platform:    "https://github.com/maxgerhardt/platform-raspberrypi.git",
					Board:       "rpipicow",
					Framework:   "arduino",
					MonitorBaud: 115200,
					Options:     []string{"board_build.core = earlephilhower"},
				},
			},
		},
	}
}

func pins(values ...domain.Pin) []domain.Pin {
	return values
}

func pinRange(from, to domain.Pin) []domain.Pin {
	result := make([]domain.Pin, 0, int(to-from)+1)
	for p := from; p <= to; p++ {
		result = append(result, p)
	}
	return result
}
