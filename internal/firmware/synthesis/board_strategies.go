package synthesis

import (
	"fmt"

	"firmgen-server/internal/firmware/domain"
)

type boardStrategy struct {
	wifiInclude string
	setup       []string
	busBegin    func(bus domain.BusChannel) []string
}

var boardStrategies = map[domain.StrategyID]boardStrategy{
	"esp32": {
		wifiInclude: "WiFi.h",
		setup:       []string{"analogReadResolution(12);"},
		busBegin:    pinnedWire,
	},
	"esp8266": {
		wifiInclude: "ESP8266WiFi.h",
		busBegin:    pinnedWire,
	},
	"avr": {
		busBegin: fixedWire,
	},
	"rp2040": {
		wifiInclude: "WiFi.h",
		setup:       []string{"analogReadResolution(12);"},
		busBegin:    rp2040Wire,
	},
}

func pinnedWire(bus domain.BusChannel) []string {
	return []string{fmt.Sprintf("Wire.begin(%s, %s);", bus.SDA, bus.SCL)}
}

func fixedWire(domain.BusChannel) []string {
	return []string{"Wire.begin();"}
}

func rp2040Wire(bus domain.BusChannel) []string {
	return []string{
		fmt.Sprintf("Wire.setSDA(%s);", bus.SDA),
		fmt.Sprintf("Wire.setSCL(%s);", bus.SCL),
		"Wire.begin();",
	}
}
