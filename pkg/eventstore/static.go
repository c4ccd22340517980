package eventstore

import (
	"context"
	"fmt"
	"sync"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
)

// Static serves partition metadata from a fixed in-memory table.
type Static struct {
	mu         sync.RWMutex
	partitions map[cloudstreamsv1.PartitionReference]PartitionMetadata
	failures   map[cloudstreamsv1.PartitionReference]error
}

// NewStatic creates an empty static store.
func NewStatic() *Static {
	return &Static{
		partitions: make(map[cloudstreamsv1.PartitionReference]PartitionMetadata),
		failures:   make(map[cloudstreamsv1.PartitionReference]error),
	}
}

// SetLength records the length of a partition and clears any failure set for it.
func (s *Static) SetLength(ref cloudstreamsv1.PartitionReference, length uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.partitions[ref] = PartitionMetadata{Subject: PartitionSubject("", ref), Length: length}
	delete(s.failures, ref)
}

// Fail makes every lookup of ref return err.
func (s *Static) Fail(ref cloudstreamsv1.PartitionReference, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[ref] = err
}

// GetPartitionMetadata returns the recorded metadata for ref.
func (s *Static) GetPartitionMetadata(
	ctx context.Context,
	ref cloudstreamsv1.PartitionReference,
) (PartitionMetadata, error) {
	if err := ctx.Err(); err != nil {
		return PartitionMetadata{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err, ok := s.failures[ref]; ok {
		return PartitionMetadata{}, err
	}
	md, ok := s.partitions[ref]
	if !ok {
		return PartitionMetadata{}, fmt.Errorf("%w: %s", ErrPartitionNotFound, ref.String())
	}
	return md, nil
}
