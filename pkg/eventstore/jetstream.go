package eventstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
)

// DefaultLookupTimeout bounds a single partition lookup against JetStream.
const DefaultLookupTimeout = 2 * time.Second

// JetStreamStore reads partition lengths from a JetStream stream.
type JetStreamStore struct {
	js            jetstream.JetStream
	stream        string
	subjectPrefix string
	timeout       time.Duration
}

// Option configures a JetStreamStore.
type Option func(*JetStreamStore)

// WithSubjectPrefix overrides DefaultSubjectPrefix.
func WithSubjectPrefix(prefix string) Option {
	return func(s *JetStreamStore) {
		s.subjectPrefix = prefix
	}
}

// WithLookupTimeout overrides DefaultLookupTimeout. A non-positive value
// leaves lookups bounded only by the caller's context.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *JetStreamStore) {
		s.timeout = d
	}
}

// NewJetStreamStore creates a store reading from the named stream.
func NewJetStreamStore(js jetstream.JetStream, stream string, opts ...Option) *JetStreamStore {
	s := &JetStreamStore{
		js:            js,
		stream:        stream,
		subjectPrefix: DefaultSubjectPrefix,
		timeout:       DefaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stream returns the name of the backing stream.
func (s *JetStreamStore) Stream() string {
	return s.stream
}

// GetPartitionMetadata returns the number of events stored for the partition.
//
// A partition without events is reported as ErrPartitionNotFound, since
// JetStream keeps no per-subject state for subjects it has never seen.
func (s *JetStreamStore) GetPartitionMetadata(
	ctx context.Context,
	ref cloudstreamsv1.PartitionReference,
) (PartitionMetadata, error) {
	if err := validate(ref); err != nil {
		return PartitionMetadata{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	subject := PartitionSubject(s.subjectPrefix, ref)

	stream, err := s.js.Stream(ctx, s.stream)
	if err != nil {
		return PartitionMetadata{}, s.classify(err, "failed to get stream %q", s.stream)
	}

	info, err := stream.Info(ctx, jetstream.WithSubjectFilter(subject))
	if err != nil {
		return PartitionMetadata{}, s.classify(err, "failed to get info for %s", subject)
	}

	length, ok := info.State.Subjects[subject]
	if !ok {
		return PartitionMetadata{}, fmt.Errorf("%w: %s", ErrPartitionNotFound, ref.String())
	}

	return PartitionMetadata{Subject: subject, Length: length}, nil
}

func (s *JetStreamStore) classify(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, jetstream.ErrStreamNotFound):
		return fmt.Errorf("%w: %s: %w", ErrPartitionNotFound, msg, err)
	case isConnectivityError(err):
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, msg, err)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

// isConnectivityError reports whether err is caused by a timeout or a lost
// connection rather than by the request itself.
func isConnectivityError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrDisconnected) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "i/o timeout")
}
