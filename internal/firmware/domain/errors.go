package domain

import "errors"

var (
	ErrUnknownDiagnosticKind = errors.New("unknown diagnostic kind")
	ErrFingerprintRequired   = errors.New("fingerprint is required")
	ErrArtifactRequired      = errors.New("artifact source is required")
)
