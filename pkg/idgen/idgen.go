// Package idgen supplies the identifier generators injected into services.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces identifiers for new records.
type Generator interface {
	NextID() string
}

// Sequence hands out decimal identifiers from a monotonic counter. It never
// repeats a value within a process, even under concurrent callers.
type Sequence struct {
	last atomic.Int64
}

// NewSequence returns a sequence whose first identifier is start.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.last.Store(start - 1)
	return s
}

// NextID implements Generator.
func (s *Sequence) NextID() string {
	return strconv.FormatInt(s.last.Add(1), 10)
}

// Observe moves the counter past id when id is numeric, so records inserted
// with fixed identifiers are never handed out again.
func (s *Sequence) Observe(id string) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return
	}
	for {
		cur := s.last.Load()
		if n <= cur || s.last.CompareAndSwap(cur, n) {
			return
		}
	}
}

// UUID hands out random version 4 UUIDs.
type UUID struct{}

// NextID implements Generator.
func (UUID) NextID() string {
	return uuid.NewString()
}

// Observer is implemented by generators that need to learn about identifiers
// assigned outside of them.
type Observer interface {
	Observe(id string)
}

// FromStrategy builds a generator by name: "sequence" (default) or "uuid".
func FromStrategy(name string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sequence":
		return NewSequence(1), nil
	case "uuid":
		return UUID{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", name)
	}
}

// maxAttempts is how many draws Unused makes before giving up.
const maxAttempts = 64

// Unused draws identifiers from gen until exists reports one as free.
func Unused(gen Generator, exists func(id string) (bool, error)) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		id := gen.NextID()
		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
		if obs, ok := gen.(Observer); ok {
			obs.Observe(id)
		}
	}
	return "", fmt.Errorf("no free identifier after %d attempts", maxAttempts)
}
