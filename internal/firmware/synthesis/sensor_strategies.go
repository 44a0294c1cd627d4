package synthesis

import (
	"fmt"
	"strings"

	"firmgen-server/internal/firmware/domain"
)

type sensorStrategy func(sensor domain.ResolvedSensor) fragment

var sensorStrategies = map[domain.StrategyID]sensorStrategy{
	"dht":          dhtFragment,
	"bmp280":       bmp280Fragment,
	"mq135":        mq135Fragment,
	"analog_light": analogLightFragment,
}

func pinOf(sensor domain.ResolvedSensor) string {
	if sensor.Pin == nil {
		return "0"
	}
	return sensor.Pin.String()
}

func dhtFragment(sensor domain.ResolvedSensor) fragment {
	name := identifier(sensor.Descriptor.Type)
	model := strings.ToUpper(sensor.Descriptor.Type)
	switch model {
	case "DHT11", "DHT21", "DHT22":
	default:
		model = "DHT22"
	}

	f := fragment{
		includes: []string{"DHT.h"},
		globals:  []string{fmt.Sprintf("DHT %s(%s, %s);", name, pinOf(sensor), model)},
		setup:    []string{fmt.Sprintf("%s.begin();", name)},
	}
	f.withReadings(sensor, []read{
		{quantity: domain.QuantityTemperature, expression: name + ".readTemperature()"},
		{quantity: domain.QuantityHumidity, expression: name + ".readHumidity()"},
	})
	return f
}

func bmp280Fragment(sensor domain.ResolvedSensor) fragment {
	name := identifier(sensor.Descriptor.Type)
	ready := name + "Ready"
	busName := "bus"
	if sensor.Bus != nil {
		busName = sensor.Bus.Name
	}

	f := fragment{
		includes: []string{"Wire.h", "Adafruit_BMP280.h"},
		globals: []string{
			fmt.Sprintf("Adafruit_BMP280 %s;", name),
			fmt.Sprintf("bool %s = false;", ready),
		},
		setup: []string{
			fmt.Sprintf("%s = %s.begin(0x76);", ready, name),
			fmt.Sprintf("if (!%s) {", ready),
			fmt.Sprintf("  Serial.println(F(%s));", cString(sensor.Descriptor.Type+" not found on "+busName)),
			"}",
		},
	}
	f.withReadings(sensor, []read{
		{quantity: domain.QuantityPressure, expression: fmt.Sprintf("%s ? %s.readPressure() / 100.0F : NAN", ready, name)},
		{quantity: domain.QuantityTemperature, expression: fmt.Sprintf("%s ? %s.readTemperature() : NAN", ready, name)},
	})
	return f
}

func mq135Fragment(sensor domain.ResolvedSensor) fragment {
	name := identifier(sensor.Descriptor.Type)
	f := fragment{
		includes: []string{"MQ135.h"},
		globals:  []string{fmt.Sprintf("MQ135 %s(%s);", name, pinOf(sensor))},
		setup:    []string{fmt.Sprintf("pinMode(%s, INPUT);", pinOf(sensor))},
	}
	f.withReadings(sensor, []read{
		{quantity: domain.QuantityGas, expression: name + ".getPPM()"},
	})
	return f
}

func analogLightFragment(sensor domain.ResolvedSensor) fragment {
	f := fragment{
		setup: []string{fmt.Sprintf("pinMode(%s, INPUT);", pinOf(sensor))},
	}
	f.withReadings(sensor, []read{
		{quantity: domain.QuantityLight, expression: fmt.Sprintf("analogRead(%s)", pinOf(sensor))},
	})
	return f
}
