package usecases

import (
	"errors"
	"strings"

	"firmgen-server/internal/firmware/domain"
)

var (
	errUnknown = errors.New("unknown error")
)

// RejectionError carries the diagnostics of a rejected selection.
type RejectionError struct {
	Diagnostics []domain.Diagnostic
}

func (e *RejectionError) Error() string {
	return "selection rejected: " + strings.Join(e.Messages(), "; ")
}

func (e *RejectionError) Messages() []string {
	messages := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		messages = append(messages, d.Message)
	}
	return messages
}
