// Package auditlog persists the plain text audit trail of the bridge.
//
// The FileRecorder appends one timestamped line per accepted alarm and one
// per record delivered to Fireplan, each to its own file. Audit failures
// are reported to the caller but never block alarm processing.
package auditlog
