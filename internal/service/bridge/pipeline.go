package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/api/web"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/domain/alarm"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/fireplan"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/logger"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/parser"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/repository/auditlog"
)

// State describes what the pipeline consumer is currently doing.
type State int32

// Pipeline states, exposed on the status surface.
const (
	StateIdle State = iota
	StateProcessing
	StateShuttingDown
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProcessing:
		return "processing"
	case StateShuttingDown:
		return "shutting down"
	default:
		return "unknown"
	}
}

var errPipelineStopped = errors.New("pipeline stopped")

// Dispatcher submits assembled records to the dispatch platform.
type Dispatcher interface {
	Submit(ctx context.Context, standort string, alarms []alarm.OutboundAlarm) (fireplan.Result, error)
}

// event is one accepted alarm traveling from the web boundary to the consumer.
type event struct {
	id    string
	alarm alarm.InboundAlarm
}

// Pipeline is the single-consumer processing loop between the web boundary
// and the dispatcher. It serializes alarm cycles, so two alarms never race
// on the Fireplan API or the audit logs.
type Pipeline struct {
	parser     *parser.Parser
	dispatcher Dispatcher
	recorder   auditlog.Recorder
	standort   string

	queue chan event
	done  chan struct{}

	state      atomic.Int32
	received   atomic.Uint64
	dispatched atomic.Uint64
	submitted  atomic.Uint64
	failed     atomic.Uint64
}

// NewPipeline wires parser, dispatcher and audit recorder into a pipeline
// with a bounded hand-off queue.
func NewPipeline(
	prs *parser.Parser,
	dispatcher Dispatcher,
	recorder auditlog.Recorder,
	standort string,
	queueSize int,
) *Pipeline {
	if queueSize < 1 {
		queueSize = 1
	}

	return &Pipeline{
		parser:     prs,
		dispatcher: dispatcher,
		recorder:   recorder,
		standort:   standort,
		queue:      make(chan event, queueSize),
		done:       make(chan struct{}),
	}
}

// Enqueue hands one alarm to the consumer, blocking while the queue is full.
// It fails only when ctx is canceled or the consumer already stopped.
func (p *Pipeline) Enqueue(ctx context.Context, eventID string, in alarm.InboundAlarm) error {
	// A stopped pipeline must win over a free queue slot.
	select {
	case <-p.done:
		return errPipelineStopped
	default:
	}

	select {
	case p.queue <- event{id: eventID, alarm: in}:
		return nil
	case <-p.done:
		return errPipelineStopped
	case <-ctx.Done():
		return fmt.Errorf("enqueue alarm: %w", ctx.Err())
	}
}

// Run processes queued alarms until ctx is canceled, then closes the Done
// channel. The cycle in flight when cancellation arrives is finished first.
func (p *Pipeline) Run(ctx context.Context) {
	defer close(p.done)

	for {
		p.state.Store(int32(StateIdle))

		select {
		case <-ctx.Done():
			p.state.Store(int32(StateShuttingDown))

			if dropped := len(p.queue); dropped > 0 {
				logger.WarnKV(ctx, "dropping queued alarms on shutdown", "count", dropped)
			}

			return
		case ev := <-p.queue:
			p.state.Store(int32(StateProcessing))
			p.process(ctx, ev)
		}
	}
}

// process runs one full cycle for a single alarm. The cycle uses a context
// detached from the shutdown signal, so in-flight network calls always run
// to completion.
func (p *Pipeline) process(ctx context.Context, ev event) {
	ctx = logger.WithKV(context.WithoutCancel(ctx), "event_id", ev.id)

	p.received.Add(1)

	logger.InfoKV(ctx, "processing alarm",
		"number", ev.alarm.Number,
		"title", ev.alarm.Title)

	entry := fmt.Sprintf("%s - %s", ev.alarm.Number, ev.alarm.Title)
	if err := p.recorder.Received(ctx, entry); err != nil {
		logger.ErrorKV(ctx, "received audit line not written", "error", err)
	}

	fields := p.parser.Extract(ctx, ev.alarm)
	rics := p.parser.Resolve(ctx, ev.alarm.Text)

	if len(rics) == 0 {
		logger.WarnKV(ctx, "no pager identifiers resolved, nothing submitted",
			"number", ev.alarm.Number)

		return
	}

	records := alarm.Assemble(fields, rics)

	p.dispatched.Add(1)

	res, err := p.dispatcher.Submit(ctx, p.standort, records)
	if err != nil {
		logger.ErrorKV(ctx, "submission cycle aborted", "error", err)
		p.failed.Add(uint64(len(records)))

		return
	}

	p.submitted.Add(uint64(res.Submitted))
	p.failed.Add(uint64(res.Failed))

	logger.InfoKV(ctx, "alarm processed",
		"records", len(records),
		"submitted", res.Submitted,
		"failed", res.Failed)
}

// Status returns a live snapshot for the web boundary.
func (p *Pipeline) Status() web.Status {
	return web.Status{
		State:         State(p.state.Load()).String(),
		QueueDepth:    len(p.queue),
		QueueCapacity: cap(p.queue),
		Received:      p.received.Load(),
		Dispatched:    p.dispatched.Load(),
		Submitted:     p.submitted.Load(),
		Failed:        p.failed.Load(),
	}
}

// Done is closed once the consumer loop has fully stopped.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}
