// Package testrailtools registers every TestRail operation as a named tool and
// runs calls through validation, the upstream client and the envelope builder.
package testrailtools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/libtracker"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

// Handler runs one tool with validated arguments.
type Handler func(ctx context.Context, args toolschema.Args) apiframework.Envelope

// Tool is one registered operation.
type Tool struct {
	Name        string
	Description string
	// ReadOnly tools never modify upstream state.
	ReadOnly bool
	// Entity keys toolschema.EntitySchemas with the record family the tool
	// works on. Empty for tools returning other shapes.
	Entity  string
	Schema  *toolschema.Schema
	Handler Handler
}

// Registry holds the tool catalogue in registration order.
type Registry struct {
	client  *testrailsdk.Client
	auditor *Auditor
	logger  *slog.Logger

	tools  []*Tool
	byName map[string]*Tool
}

type Option func(*Registry)

// WithAuditor publishes one event per call.
func WithAuditor(a *Auditor) Option {
	return func(r *Registry) {
		r.auditor = a
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New registers the full catalogue against client.
func New(client *testrailsdk.Client, opts ...Option) *Registry {
	r := &Registry{
		client: client,
		logger: slog.Default(),
		byName: make(map[string]*Tool),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.registerProjectTools()
	r.registerSuiteTools()
	r.registerSectionTools()
	r.registerCaseTools()
	r.registerRunTools()
	r.registerTestTools()
	r.registerResultTools()
	r.registerPlanTools()
	r.registerMilestoneTools()
	r.registerSharedStepTools()
	return r
}

func (r *Registry) register(t *Tool) {
	if _, exists := r.byName[t.Name]; exists {
		panic(fmt.Sprintf("testrailtools: tool %q registered twice", t.Name))
	}
	t.ReadOnly = strings.HasPrefix(t.Name, "get")
	r.tools = append(r.tools, t)
	r.byName[t.Name] = t
}

// Tools returns the catalogue in registration order.
func (r *Registry) Tools() []*Tool {
	return r.tools
}

// Call decodes raw JSON arguments and runs the named tool. An empty raw means
// no arguments.
func (r *Registry) Call(ctx context.Context, name string, raw json.RawMessage) apiframework.Envelope {
	args := map[string]any{}
	if trimmed := strings.TrimSpace(string(raw)); trimmed != "" && trimmed != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return r.finish(ctx, name, time.Now(),
				apiframework.Failure(fmt.Sprintf("Invalid arguments for %s", name),
					apiframework.InvalidArgument("", "arguments must be a JSON object: %v", err)))
		}
	}
	return r.CallArgs(ctx, name, args)
}

// CallArgs runs the named tool. It never panics and never returns an error:
// every outcome is an envelope.
func (r *Registry) CallArgs(ctx context.Context, name string, args map[string]any) (env apiframework.Envelope) {
	start := time.Now()
	if libtracker.RequestID(ctx) == "" {
		ctx, _ = libtracker.WithNewRequestID(ctx)
	}

	tool, ok := r.byName[name]
	if !ok {
		return r.finish(ctx, name, start, apiframework.Failure(
			fmt.Sprintf("Unknown tool %q", name),
			fmt.Errorf("%w: no tool named %q", apiframework.ErrUnknown, name)))
	}

	validated, err := tool.Schema.Validate(args)
	if err != nil {
		return r.finish(ctx, name, start, apiframework.Failure(fmt.Sprintf("Invalid arguments for %s", name), err))
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool handler panicked", "tool", name, "request_id", libtracker.RequestID(ctx), "panic", rec, "stack", string(debug.Stack()))
			env = r.finish(ctx, name, start, apiframework.Failure(
				fmt.Sprintf("Unexpected failure in %s", name),
				fmt.Errorf("%w: %v", apiframework.ErrUnknown, rec)))
		}
	}()

	return r.finish(ctx, name, start, tool.Handler(ctx, validated))
}

func (r *Registry) finish(ctx context.Context, name string, start time.Time, env apiframework.Envelope) apiframework.Envelope {
	elapsed := time.Since(start)
	requestID := libtracker.RequestID(ctx)

	var kind apiframework.ErrorKind
	if env.Error != nil {
		kind = env.Error.Kind
		r.logger.Warn("tool call failed", "tool", name, "request_id", requestID, "duration", elapsed, "kind", kind, "error", env.Error.Message)
	} else {
		r.logger.Debug("tool call succeeded", "tool", name, "request_id", requestID, "duration", elapsed)
	}

	if r.auditor != nil {
		token := name
		if _, known := r.byName[name]; !known {
			token = unknownToolToken
		}
		r.auditor.Record(ctx, token, ToolCallEvent{
			Tool:       name,
			RequestID:  requestID,
			Success:    env.Success,
			Kind:       kind,
			DurationMS: elapsed.Milliseconds(),
			At:         start.UTC(),
		})
	}
	return env
}
