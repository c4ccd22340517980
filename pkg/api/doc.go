// Package api serves subscription health over HTTP.
//
// The single resource is
//
//	GET /api/resources/v1/subscriptions/health?namespace=<ns>&labelSelector=<selector>
//
// which responds with a JSON array of SubscriptionHealth objects. The array is
// streamed: each element is written and flushed as soon as the underlying
// sequence produces it, so a slow partition lookup never holds back earlier
// results. Errors detected before the first element is written are reported
// as application/problem+json documents.
package api
