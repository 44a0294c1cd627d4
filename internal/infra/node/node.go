package node

import (
	"os"
	"sync"

	"github.com/google/uuid"
)

// Set at build time with -ldflags "-X firmgen-server/internal/infra/node.Version=...".
var (
	Version    = "development"
	CommitHash = "unknown"
)

// Info identifies the running server instance in logs, health checks and
// build records.
type Info struct {
	ID         string `json:"id"`
	Hostname   string `json:"hostname"`
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
}

var (
	current     Info
	currentOnce sync.Once
)

// Current returns the same Info for the lifetime of the process.
func Current() Info {
	currentOnce.Do(func() {
		hostname, err := os.Hostname()
		if err != nil || hostname == "" {
			hostname = "localhost"
		}
		current = Info{
			ID:         uuid.NewString(),
			Hostname:   hostname,
			Version:    Version,
			CommitHash: CommitHash,
		}
	})
	return current
}
