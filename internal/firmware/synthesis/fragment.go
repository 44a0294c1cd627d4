package synthesis

import (
	"fmt"
	"strings"
	"unicode"

	"firmgen-server/internal/firmware/domain"
)

// fragment is the code a strategy contributes to each composition point of
// the program skeleton. Lines carry their own relative indentation.
type fragment struct {
	includes []string
	globals  []string
	setup    []string
	loop     []string
	payload  []string
}

type read struct {
	quantity   domain.Quantity
	expression string
}

// withReadings declares one float per quantity, assigns it every loop
// iteration, prints it and adds it to the telemetry payload. Quantities the
// strategy cannot read are skipped.
func (f *fragment) withReadings(sensor domain.ResolvedSensor, available []read) {
	name := identifier(sensor.Descriptor.Type)
	label := sensor.Descriptor.Type

	var variables []string
	var quantities []domain.Quantity
	for _, quantity := range sensor.Descriptor.Quantities {
		for _, r := range available {
			if r.quantity != quantity {
				continue
			}
			variable := name + exported(string(quantity))
			f.globals = append(f.globals, fmt.Sprintf("float %s = NAN;", variable))
			f.loop = append(f.loop, fmt.Sprintf("%s = %s;", variable, r.expression))
			f.payload = append(f.payload, fmt.Sprintf("if (!isnan(%s)) doc[%s] = %s;", variable, cString(string(quantity)), variable))
			variables = append(variables, variable)
			quantities = append(quantities, quantity)
		}
	}

	if len(variables) == 0 {
		return
	}

	checks := make([]string, 0, len(variables))
	for _, variable := range variables {
		checks = append(checks, fmt.Sprintf("isnan(%s)", variable))
	}

	f.loop = append(f.loop,
		fmt.Sprintf("if (%s) {", strings.Join(checks, " || ")),
		fmt.Sprintf("  Serial.println(F(%s));", cString(label+" read failed")),
		"} else {",
	)
	for i, variable := range variables {
		f.loop = append(f.loop,
			fmt.Sprintf("  Serial.print(F(%s));", cString(fmt.Sprintf("%s %s: ", label, quantities[i]))),
			fmt.Sprintf("  Serial.println(%s);", variable),
		)
	}
	f.loop = append(f.loop, "}")
}

// identifier turns a sensor type into a C identifier: DHT22 -> dht22.
func identifier(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}

	result := b.String()
	if result == "" || unicode.IsDigit(rune(result[0])) {
		result = "s" + result
	}
	return result
}

func exported(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

// cString renders value as a C string literal. Bytes outside printable ASCII
// are written as three digit octal escapes so the literal never depends on the
// source encoding.
func cString(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '?':
			// avoids trigraph sequences
			b.WriteString(`\?`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&b, "\\%03o", c)
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
