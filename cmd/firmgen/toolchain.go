package main

import (
	"firmgen-server/internal/firmware/domain"
	"firmgen-server/internal/firmware/registry"
	"firmgen-server/internal/firmware/synthesis"
	"firmgen-server/internal/firmware/validator"
)

// toolchain is the offline counterpart of the generation service: same
// catalog, validator and synthesizer, without persistence or events.
type toolchain struct {
	registry    *registry.Registry
	validator   *validator.Validator
	synthesizer *synthesis.Synthesizer
}

func newToolchain() (*toolchain, error) {
	synthesizer := synthesis.NewSynthesizer()
	reg, err := registry.New(registry.Catalog(), synthesizer)
	if err != nil {
		return nil, err
	}

	return &toolchain{
		registry:    reg,
		validator:   validator.NewValidator(reg),
		synthesizer: synthesizer,
	}, nil
}

type project struct {
	Config      domain.NormalizedConfig
	Fingerprint string
	Source      string
	Manifest    string
}

// build validates request and synthesizes it. The outcome is returned for
// rejected requests so callers can print the diagnostics.
func (t *toolchain) build(request domain.SelectionRequest) (project, domain.ValidationOutcome, error) {
	outcome := t.validator.Validate(request)
	config, ok := outcome.Config()
	if !ok {
		return project{}, outcome, nil
	}

	fingerprint, err := config.Fingerprint()
	if err != nil {
		return project{}, outcome, err
	}

	return project{
		Config:      config,
		Fingerprint: fingerprint,
		Source:      t.synthesizer.Synthesize(config).Source,
		Manifest:    t.synthesizer.Manifest(config),
	}, outcome, nil
}
