package eventstore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
)

var (
	// ErrPartitionNotFound is returned when the store holds no events for a partition.
	ErrPartitionNotFound = errors.New("partition not found")

	// ErrUnavailable is returned when the store could not be reached.
	ErrUnavailable = errors.New("event store unavailable")

	// ErrInvalidPartition is returned for references that cannot address a partition.
	ErrInvalidPartition = errors.New("invalid partition reference")
)

// DefaultSubjectPrefix is the subject prefix events are published under.
const DefaultSubjectPrefix = "cloudevents"

// PartitionMetadata is the telemetry the store reports for one partition.
type PartitionMetadata struct {
	// Subject is the store-side address of the partition.
	Subject string

	// Length is the number of events in the partition. It never decreases.
	Length uint64
}

// PartitionSubject returns the subject a partition's events are stored under.
//
// The id is base64url encoded because partition ids are usually URIs or
// dotted type names, and '.', '*' and '>' are reserved in subjects.
func PartitionSubject(prefix string, ref cloudstreamsv1.PartitionReference) string {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return strings.Join([]string{
		prefix,
		string(ref.Type),
		base64.RawURLEncoding.EncodeToString([]byte(ref.Id)),
	}, ".")
}

func validate(ref cloudstreamsv1.PartitionReference) error {
	switch ref.Type {
	case cloudstreamsv1.PartitionBySource, cloudstreamsv1.PartitionByType, cloudstreamsv1.PartitionBySubject:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidPartition, ref.Type)
	}
	if ref.Id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidPartition)
	}
	return nil
}
