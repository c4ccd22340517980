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

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ============================================================================
// RBAC Markers
// ============================================================================
//
// The health endpoint and exporter only ever read subscriptions.
//
// +kubebuilder:rbac:groups=cloud-streams.io,resources=subscriptions,verbs=get;list;watch

// ============================================================================
// Enumerations
// ============================================================================

// SubscriptionStatusPhase is the lifecycle phase of a Subscription.
// +kubebuilder:validation:Enum=Inactive;Active
type SubscriptionStatusPhase string

const (
	// SubscriptionPhaseInactive means no subscriber is consuming the stream.
	// It is the phase reported for subscriptions the reconciler has not
	// picked up yet.
	SubscriptionPhaseInactive SubscriptionStatusPhase = "Inactive"
	// SubscriptionPhaseActive means events are being dispatched to the subscriber.
	SubscriptionPhaseActive SubscriptionStatusPhase = "Active"
)

// SubscriberState describes whether the subscriber endpoint can be reached.
// +kubebuilder:validation:Enum=Reachable;Unreachable
type SubscriberState string

const (
	SubscriberStateReachable   SubscriberState = "Reachable"
	SubscriberStateUnreachable SubscriberState = "Unreachable"
)

// PartitionType is the cloud event attribute a partition is keyed by.
// +kubebuilder:validation:Enum=by-source;by-type;by-subject
type PartitionType string

const (
	PartitionBySource  PartitionType = "by-source"
	PartitionByType    PartitionType = "by-type"
	PartitionBySubject PartitionType = "by-subject"
)

// FilterType selects how a CloudEventFilter is evaluated.
// +kubebuilder:validation:Enum=attributes;expression
type FilterType string

const (
	FilterByAttributes FilterType = "attributes"
	FilterByExpression FilterType = "expression"
)

// ============================================================================
// Subscription Spec
// ============================================================================

// PartitionReference identifies a partition of the cloud event stream.
type PartitionReference struct {
	// Type is the attribute the partition is keyed by.
	Type PartitionType `json:"type"`

	// Id is the value of the partition key, e.g. the event source URI.
	// +kubebuilder:validation:MinLength=1
	Id string `json:"id"`
}

// String returns the "type/id" form of the reference, used in logs and
// metric labels.
func (p PartitionReference) String() string {
	return string(p.Type) + "/" + p.Id
}

// Subscriber describes the endpoint events are dispatched to.
type Subscriber struct {
	// Uri is the address of the subscriber.
	// +kubebuilder:validation:MinLength=1
	Uri string `json:"uri"`

	// RateLimit is the maximum number of events per second sent to the subscriber.
	// +optional
	// +kubebuilder:validation:Minimum=1
	RateLimit *int32 `json:"rateLimit,omitempty"`
}

// CloudEventFilter restricts which events a subscription receives.
type CloudEventFilter struct {
	// Type selects the evaluation strategy.
	Type FilterType `json:"type"`

	// Attributes maps cloud event attributes to the values (or patterns) they must match.
	// +optional
	Attributes map[string]string `json:"attributes,omitempty"`

	// Expression is a runtime expression evaluated against each event.
	// +optional
	Expression string `json:"expression,omitempty"`
}

// SubscriptionStreamSpec configures where in the stream a subscription starts.
type SubscriptionStreamSpec struct {
	// Offset is the position to start from. -1 means the end of the stream.
	// +optional
	Offset *int64 `json:"offset,omitempty"`
}

// SubscriptionSpec defines the desired state of Subscription.
type SubscriptionSpec struct {
	// Subscriber is the endpoint events are dispatched to.
	Subscriber Subscriber `json:"subscriber"`

	// Partition is the stream partition the subscription reads from. When
	// unset the subscription reads the whole stream and has no partition
	// telemetry.
	// +optional
	Partition *PartitionReference `json:"partition,omitempty"`

	// Filter restricts the events dispatched to the subscriber.
	// +optional
	Filter *CloudEventFilter `json:"filter,omitempty"`

	// Stream configures the starting position.
	// +optional
	Stream *SubscriptionStreamSpec `json:"stream,omitempty"`
}

// ============================================================================
// Subscription Status
// ============================================================================

// SubscriptionStreamStatus is the consumer position of a subscription.
type SubscriptionStreamStatus struct {
	// AckedOffset is the offset of the last event acknowledged by the subscriber.
	// Unset until the first acknowledgement.
	// +optional
	AckedOffset *uint64 `json:"ackedOffset,omitempty"`
}

// SubscriberStatus is the last observed state of the subscriber endpoint.
type SubscriberStatus struct {
	// State is the reachability of the subscriber.
	// +optional
	State SubscriberState `json:"state,omitempty"`

	// Reason explains the current state, if any.
	// +optional
	Reason string `json:"reason,omitempty"`
}

// SubscriptionStatus defines the observed state of Subscription.
type SubscriptionStatus struct {
	// ObservedGeneration is the generation last processed by the reconciler.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// Phase is the lifecycle phase of the subscription.
	// +optional
	Phase SubscriptionStatusPhase `json:"phase,omitempty"`

	// Stream is the consumer position.
	// +optional
	Stream *SubscriptionStreamStatus `json:"stream,omitempty"`

	// Subscriber is the subscriber endpoint state.
	// +optional
	Subscriber *SubscriberStatus `json:"subscriber,omitempty"`
}

// ============================================================================
// Kind Definition and registration
// ============================================================================

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=sub
// +kubebuilder:printcolumn:name="Phase",type="string",JSONPath=".status.phase"
// +kubebuilder:printcolumn:name="Partition",type="string",JSONPath=".spec.partition.id"
// +kubebuilder:printcolumn:name="Acked",type="integer",JSONPath=".status.stream.ackedOffset"

// Subscription is the Schema for the subscriptions API
type Subscription struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   SubscriptionSpec   `json:"spec,omitempty"`
	Status SubscriptionStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// SubscriptionList contains a list of Subscription
type SubscriptionList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Subscription `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Subscription{}, &SubscriptionList{})
}
