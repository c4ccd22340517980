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

// Package status provides read-only accessors over the Status of
// Subscription resources.
//
// The subscription reconciler owns the status and leaves most of it unset
// until it has something to report. These helpers apply the defaults the rest
// of the control plane relies on so callers never dereference a nil section.
package status

import (
	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
)

// EffectivePhase returns the phase recorded in status, or Inactive when the
// subscription has not been reconciled yet.
func EffectivePhase(status *cloudstreamsv1.SubscriptionStatus) cloudstreamsv1.SubscriptionStatusPhase {
	if status == nil || status.Phase == "" {
		return cloudstreamsv1.SubscriptionPhaseInactive
	}
	return status.Phase
}

// AckedOffset returns a copy of the acknowledged offset, or nil if nothing
// has been acknowledged.
func AckedOffset(status *cloudstreamsv1.SubscriptionStatus) *uint64 {
	if status == nil || status.Stream == nil || status.Stream.AckedOffset == nil {
		return nil
	}
	v := *status.Stream.AckedOffset
	return &v
}

// SubscriberState returns the subscriber state, or nil if none was observed.
func SubscriberState(status *cloudstreamsv1.SubscriptionStatus) *cloudstreamsv1.SubscriberState {
	if status == nil || status.Subscriber == nil || status.Subscriber.State == "" {
		return nil
	}
	v := status.Subscriber.State
	return &v
}

// SubscriberReason returns the reason attached to the subscriber state, or
// nil if there is none.
func SubscriberReason(status *cloudstreamsv1.SubscriptionStatus) *string {
	if status == nil || status.Subscriber == nil || status.Subscriber.Reason == "" {
		return nil
	}
	v := status.Subscriber.Reason
	return &v
}
