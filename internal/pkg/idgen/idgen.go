// Package idgen generates build identifiers
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/simui-api/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator issues random UUIDs, optionally prefixed as prefix_uuid
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a UUID generator
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns a new UUID based ID
func (g *UUIDGenerator) Generate() string {
	return withPrefix(g.prefix, uuid.NewString())
}

// SequentialGenerator issues prefix_1, prefix_2, ... for tests
type SequentialGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequential creates a sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next ID
func (g *SequentialGenerator) Generate() string {
	return withPrefix(g.prefix, fmt.Sprintf("%d", g.counter.Add(1)))
}

func withPrefix(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
