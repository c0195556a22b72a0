// Package bridge runs the alarm bridge: it accepts webhook alarms through
// the web boundary, funnels them through a single-consumer pipeline
// (extract, resolve, assemble, submit), and owns startup and graceful
// shutdown of the whole service.
//
// Alarms are processed strictly one at a time in arrival order. A shutdown
// signal lets the cycle in flight finish and prevents new cycles from
// starting; alarms still queued at that point are dropped.
package bridge
