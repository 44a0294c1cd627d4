package synthesis

import (
	"fmt"
	"strings"

	"firmgen-server/internal/firmware/domain"
)

// Manifest renders the platformio.ini that builds the synthesized source.
func (s *Synthesizer) Manifest(config domain.NormalizedConfig) string {
	platform := config.Board.Platform

	var libraries []string
	for _, sensor := range config.Sensors {
		libraries = appendUnique(libraries, sensor.Descriptor.Libraries...)
	}
	if config.NetworkingEnabled() {
		libraries = appendUnique(libraries, networkLibraries...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "; PlatformIO project for %s %s.\n\n", config.Board.ID, generatorComment)
	fmt.Fprintf(&b, "[env:%s]\n", platform.Env)
	fmt.Fprintf(&b, "platform = %s\n", platform.Platform)
	fmt.Fprintf(&b, "board = %s\n", platform.Board)
	fmt.Fprintf(&b, "framework = %s\n", platform.Framework)
	fmt.Fprintf(&b, "monitor_speed = %d\n", baudRate(config.Board))
	for _, option := range platform.Options {
		fmt.Fprintf(&b, "%s\n", option)
	}
	if len(libraries) > 0 {
		b.WriteString("lib_deps =\n")
		for _, library := range libraries {
			fmt.Fprintf(&b, "    %s\n", library)
		}
	}
	return b.String()
}
