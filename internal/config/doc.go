// Package config defines the bridge settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the Fireplan credentials, the extraction patterns,
// the pager catalogue, and the ingest server settings. Validate fills in
// defaults and rejects configurations the bridge could not safely run with.
package config
