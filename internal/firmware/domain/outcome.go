package domain

// ValidationOutcome is either an accepted configuration or a non-empty,
// ordered list of diagnostics.
type ValidationOutcome struct {
	config      *NormalizedConfig
	diagnostics []Diagnostic
}

func Accepted(config NormalizedConfig) ValidationOutcome {
	return ValidationOutcome{config: &config}
}

func Rejected(diagnostics []Diagnostic) ValidationOutcome {
	return ValidationOutcome{diagnostics: diagnostics}
}

func (o ValidationOutcome) IsAccepted() bool {
	return o.config != nil
}

func (o ValidationOutcome) Config() (NormalizedConfig, bool) {
	if o.config == nil {
		return NormalizedConfig{}, false
	}
	return *o.config, true
}

func (o ValidationOutcome) Diagnostics() []Diagnostic {
	return o.diagnostics
}

func (o ValidationOutcome) Messages() []string {
	messages := make([]string, 0, len(o.diagnostics))
	for _, d := range o.diagnostics {
		messages = append(messages, d.Message)
	}
	return messages
}
