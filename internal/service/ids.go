package service

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator issues prefix-1, prefix-2, ... and is safe for
// concurrent use. Tests use it for predictable identifiers.
type SequenceGenerator struct {
	prefix string
	n      atomic.Int64
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	return g.prefix + "-" + strconv.FormatInt(g.n.Add(1), 10)
}
