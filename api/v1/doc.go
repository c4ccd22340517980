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

// Package v1 defines the API types for the Cloud Streams control plane.
//
// This package contains the Go type definitions for the Custom Resources in
// the cloud-streams.io API group, together with the read-only projections the
// control plane computes from them.
//
// # Custom Resources
//
//   - Subscription: A declarative subscription to the cloud event stream. The
//     spec carries the desired partition and filters; the status is written by
//     the subscription reconciler (phase, acknowledged offset, subscriber state).
//
// # Projections
//
//   - SubscriptionHealth: A point-in-time view that merges a Subscription's
//     status with live telemetry from the event store (partition length, lag).
//     It is never persisted.
//
// +kubebuilder:object:generate=true
// +groupName=cloud-streams.io
package v1
