/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1

// SubscriptionHealth is a point-in-time health snapshot of a Subscription.
//
// Control-plane fields are always populated. PartitionLength is set only when
// the event store answered for the subscription's partition, and Lag only when
// both PartitionLength and AckedOffset are known.
type SubscriptionHealth struct {
	// Name is the name of the subscription.
	Name string `json:"name"`

	// Namespace is the namespace of the subscription, if any.
	Namespace string `json:"namespace,omitempty"`

	// Phase is the subscription phase, Inactive when the status has none.
	Phase SubscriptionStatusPhase `json:"phase"`

	// PartitionId is the id of the partition the subscription reads from.
	PartitionId *string `json:"partitionId,omitempty"`

	// AckedOffset is the last acknowledged offset in the stream.
	AckedOffset *uint64 `json:"ackedOffset,omitempty"`

	// PartitionLength is the current length of the partition.
	PartitionLength *uint64 `json:"partitionLength,omitempty"`

	// Lag is PartitionLength minus AckedOffset. It is negative when the
	// acknowledged offset is ahead of the length reported by the store.
	Lag *int64 `json:"lag,omitempty"`

	// SubscriberState is the reachability of the subscriber.
	SubscriberState *SubscriberState `json:"subscriberState,omitempty"`

	// SubscriberReason explains the subscriber state, if any.
	SubscriberReason *string `json:"subscriberReason,omitempty"`
}
