package synthesis

import (
	"fmt"
	"slices"
	"strings"

	"firmgen-server/internal/firmware/domain"
)

const (
	readIntervalMs   = 2000
	defaultBaudRate  = 115200
	skeletonIndent   = "  "
	generatorComment = "generated by firmgen"
)

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesizer turns accepted configurations into Arduino firmware. It keeps no
// state: the strategy tables are fixed at compile time.
type Synthesizer struct{}

func (s *Synthesizer) HasSensorStrategy(id domain.StrategyID) bool {
	_, ok := sensorStrategies[id]
	return ok
}

func (s *Synthesizer) HasBoardStrategy(id domain.StrategyID) bool {
	_, ok := boardStrategies[id]
	return ok
}

// Synthesize renders the firmware source for config. Equal configurations
// always yield byte-identical source. It panics on a sensor strategy the
// registry would have refused at startup.
func (s *Synthesizer) Synthesize(config domain.NormalizedConfig) domain.GeneratedArtifact {
	board := boardStrategies[config.Board.StrategyID]

	var network *fragment
	if config.NetworkingEnabled() && board.wifiInclude != "" {
		f := networkFragment(board, config.Network)
		network = &f
	}

	sensors := make([]fragment, 0, len(config.Sensors))
	for _, sensor := range config.Sensors {
		strategy, ok := sensorStrategies[sensor.Descriptor.StrategyID]
		if !ok {
			panic(fmt.Sprintf("no code strategy %q for sensor %s", sensor.Descriptor.StrategyID, sensor.Descriptor.Type))
		}
		sensors = append(sensors, strategy(sensor))
	}

	var w sourceWriter
	w.header(config)

	includes := []string{"Arduino.h"}
	if network != nil {
		includes = appendUnique(includes, network.includes...)
	}
	for _, f := range sensors {
		includes = appendUnique(includes, f.includes...)
	}
	for _, include := range includes {
		w.line(0, fmt.Sprintf("#include <%s>", include))
	}
	w.blank()

	w.line(0, fmt.Sprintf("const unsigned long READ_INTERVAL_MS = %d;", readIntervalMs))
	if network != nil {
		w.blank()
		w.lines(0, network.globals)
	}
	for _, f := range sensors {
		if len(f.globals) == 0 {
			continue
		}
		w.blank()
		w.lines(0, f.globals)
	}
	w.blank()

	w.line(0, "void setup() {")
	w.line(1, fmt.Sprintf("Serial.begin(%d);", baudRate(config.Board)))
	w.lines(1, board.setup)
	for _, bus := range usedBuses(config) {
		if board.busBegin != nil {
			w.lines(1, board.busBegin(bus))
		}
	}
	if network != nil {
		w.lines(1, network.setup)
	}
	for _, f := range sensors {
		w.lines(1, f.setup)
	}
	w.line(0, "}")
	w.blank()

	w.line(0, "void loop() {")
	if network != nil {
		w.lines(1, network.loop)
	}
	var payload []string
	for _, f := range sensors {
		w.lines(1, f.loop)
		payload = append(payload, f.payload...)
	}
	if network != nil {
		w.lines(1, publishLines(payload))
	}
	w.line(1, "delay(READ_INTERVAL_MS);")
	w.line(0, "}")

	return domain.GeneratedArtifact{Source: w.String()}
}

func baudRate(board domain.BoardProfile) int {
	if board.Platform.MonitorBaud > 0 {
		return board.Platform.MonitorBaud
	}
	return defaultBaudRate
}

func usedBuses(config domain.NormalizedConfig) []domain.BusChannel {
	var buses []domain.BusChannel
	for _, sensor := range config.Sensors {
		if sensor.Bus == nil {
			continue
		}
		if slices.ContainsFunc(buses, func(b domain.BusChannel) bool { return b.Name == sensor.Bus.Name }) {
			continue
		}
		buses = append(buses, *sensor.Bus)
	}
	return buses
}

func appendUnique(values []string, candidates ...string) []string {
	for _, candidate := range candidates {
		if candidate == "" || slices.Contains(values, candidate) {
			continue
		}
		values = append(values, candidate)
	}
	return values
}

func describeWiring(sensor domain.ResolvedSensor) string {
	switch {
	case sensor.Pin != nil:
		return fmt.Sprintf("%s on pin %s", sensor.Descriptor.Type, sensor.Pin)
	case sensor.Bus != nil:
		return fmt.Sprintf("%s on %s (SDA %s, SCL %s)", sensor.Descriptor.Type, sensor.Bus.Name, sensor.Bus.SDA, sensor.Bus.SCL)
	default:
		return sensor.Descriptor.Type
	}
}

type sourceWriter struct {
	strings.Builder
}

func (w *sourceWriter) header(config domain.NormalizedConfig) {
	wiring := make([]string, 0, len(config.Sensors))
	for _, sensor := range config.Sensors {
		wiring = append(wiring, describeWiring(sensor))
	}

	telemetry := "disabled"
	if config.NetworkingEnabled() {
		telemetry = "MQTT"
	}

	w.line(0, fmt.Sprintf("// Firmware for %s %s.", config.Board.ID, generatorComment))
	w.line(0, fmt.Sprintf("// Sensors: %s.", strings.Join(wiring, ", ")))
	w.line(0, fmt.Sprintf("// Telemetry: %s.", telemetry))
	w.blank()
}

func (w *sourceWriter) line(depth int, text string) {
	if text == "" {
		w.blank()
		return
	}
	w.WriteString(strings.Repeat(skeletonIndent, depth))
	w.WriteString(text)
	w.WriteByte('\n')
}

func (w *sourceWriter) lines(depth int, texts []string) {
	for _, text := range texts {
		w.line(depth, text)
	}
}

func (w *sourceWriter) blank() {
	w.WriteByte('\n')
}
