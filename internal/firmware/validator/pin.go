package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"firmgen-server/internal/firmware/domain"
)

var ErrInvalidPin = errors.New("invalid pin")

// ParsePin accepts a decimal pin number with an optional, case-insensitive
// GPIO or GP prefix: "4", "GPIO4", "gp15".
func ParsePin(raw string) (domain.Pin, error) {
	value := strings.TrimSpace(raw)
	upper := strings.ToUpper(value)
	for _, prefix := range []string{"GPIO", "GP"} {
		if strings.HasPrefix(upper, prefix) {
			value = value[len(prefix):]
			break
		}
	}

	if value == "" || strings.ContainsAny(value, "+- ") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPin, raw)
	}

	number, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPin, raw)
	}
	return domain.Pin(number), nil
}
