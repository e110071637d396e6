package apiframework

import (
	"context"
	"net/http"

	"github.com/contenox/testrail-mcp/libtracker"
)

// SetTrackingHeaders copies the request id stored in ctx onto an outgoing
// upstream request.
func SetTrackingHeaders(ctx context.Context, header http.Header) {
	if requestID := libtracker.RequestID(ctx); requestID != "" {
		header.Set("X-Request-ID", requestID)
	}
}
