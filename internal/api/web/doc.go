// Package web exposes the HTTP surface of the bridge: the authenticated
// /submit endpoint the alarm webhook posts to, plus a set of small
// observability routes (health, status, metrics, version).
//
// The package only builds the gin handler; listening, TLS, and shutdown
// are owned by the bridge service that mounts it.
package web
