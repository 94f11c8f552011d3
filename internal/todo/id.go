package todo

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ID strategies selectable through configuration.
const (
	StrategySequence = "sequence"
	StrategyNanoID   = "nanoid"
	StrategyUUID     = "uuid"
)

// Strategies lists the valid ID strategy names.
var Strategies = []string{StrategySequence, StrategyNanoID, StrategyUUID}

// nanoidAlphabet avoids characters that are ambiguous when typed on a command line.
const nanoidAlphabet = "0123456789abcdefghijkmnopqrstuvwxyz"

// IDGenerator produces ids for new todos. Generators must never return the same
// id twice during the lifetime of a process.
type IDGenerator interface {
	NextID() (string, error)
}

// Sequence hands out "1", "2", "3", ... and never reuses a value, even after deletes.
type Sequence struct {
	n atomic.Uint64
}

// NextID returns the next number in the sequence.
func (s *Sequence) NextID() (string, error) {
	return strconv.FormatUint(s.n.Add(1), 10), nil
}

// NanoID generates random ids of a fixed length.
type NanoID struct {
	Length int
}

// NextID returns a fresh random id.
func (g NanoID) NextID() (string, error) {
	length := g.Length
	if length <= 0 {
		length = 8
	}
	return gonanoid.Generate(nanoidAlphabet, length)
}

// UUID generates random version 4 UUIDs.
type UUID struct{}

// NextID returns a fresh UUID string.
func (UUID) NextID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// NewIDGenerator returns the generator registered for strategy.
func NewIDGenerator(strategy string, length int) (IDGenerator, error) {
	switch strategy {
	case "", StrategySequence:
		return &Sequence{}, nil
	case StrategyNanoID:
		return NanoID{Length: length}, nil
	case StrategyUUID:
		return UUID{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
