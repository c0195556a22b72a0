// Package fireplan implements the client side of the Fireplan REST API.
//
// The Client registers a session token per location (POST /Register/{standort},
// authenticated by the API key) and caches it for its lifetime, then posts one
// alarm record per resolved pager identifier (POST /Alarmierung, authenticated
// by the session token). Records fail independently of each other; only a
// failed token registration aborts a whole submission cycle.
package fireplan
