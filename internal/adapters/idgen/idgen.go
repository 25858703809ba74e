// Package idgen provides the identifier sources injected into the dispatcher.
package idgen

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/PabloGalante/agentlink/internal/domain"
)

// UUID hands out random version 4 UUIDs.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Counter hands out "<prefix><n>" with n starting at 1. Safe for concurrent use.
type Counter struct {
	prefix string
	next   atomic.Int64
}

func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix}
}

func (c *Counter) NewID() string {
	return c.prefix + strconv.FormatInt(c.next.Add(1), 10)
}

// New returns the source registered under kind ("uuid" or "counter").
func New(kind string) (domain.IDSource, error) {
	switch kind {
	case "", "uuid":
		return UUID{}, nil
	case "counter":
		return NewCounter("id-"), nil
	}
	return nil, fmt.Errorf("unknown id source %q", kind)
}
