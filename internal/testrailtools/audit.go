package testrailtools

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/libbus"
)

// DefaultAuditSubject prefixes the subject of every tool call event.
const DefaultAuditSubject = "testrail.tools"

const publishTimeout = 2 * time.Second

// unknownToolToken replaces names that are not registered tools in subjects.
const unknownToolToken = "unknown"

// ToolCallEvent describes one finished call. It never carries argument values.
type ToolCallEvent struct {
	Tool       string                 `json:"tool"`
	RequestID  string                 `json:"requestId"`
	Success    bool                   `json:"success"`
	Kind       apiframework.ErrorKind `json:"kind,omitempty"`
	DurationMS int64                  `json:"durationMs"`
	At         time.Time              `json:"at"`
}

// Auditor publishes tool call events on a bus. Publishing happens off the call
// path; Wait blocks until the pending events are out.
type Auditor struct {
	bus     libbus.Messenger
	subject string
	logger  *slog.Logger
	pending sync.WaitGroup
}

// NewAuditor publishes to "<subject>.<tool>". An empty subject uses DefaultAuditSubject.
func NewAuditor(bus libbus.Messenger, subject string, logger *slog.Logger) *Auditor {
	if subject == "" {
		subject = DefaultAuditSubject
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{bus: bus, subject: subject, logger: logger}
}

// Subject returns the subject events of tool are published on.
func (a *Auditor) Subject(tool string) string {
	return a.subject + "." + tool
}

// Record publishes ev on the subject of tool in the background. Failures are
// logged and otherwise ignored.
func (a *Auditor) Record(ctx context.Context, tool string, ev ToolCallEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		a.logger.Error("failed to encode audit event", "tool", ev.Tool, "error", err)
		return
	}
	subject := a.Subject(tool)
	ctx = context.WithoutCancel(ctx)
	a.pending.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		if err := a.bus.Publish(ctx, subject, data); err != nil {
			a.logger.Warn("failed to publish audit event", "tool", ev.Tool, "request_id", ev.RequestID, "error", err)
		}
	})
}

// Wait blocks until every recorded event was published or timed out.
func (a *Auditor) Wait() {
	a.pending.Wait()
}
