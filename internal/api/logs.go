package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/frontporchlabs/rooflights/internal/logging"
)

// LogsRequest selects how many recent entries to return.
type LogsRequest struct {
	Limit int `query:"limit" default:"200" minimum:"1" maximum:"1000" doc:"Maximum number of entries"`
}

// LogsResponse returns recent log history from the ring buffer.
type LogsResponse struct {
	Body struct {
		Entries []logging.LogEntry `json:"entries"`
		Count   int                `json:"count"`
	}
}

// registerLogRoutes registers the log history endpoint backed by the
// logging ring buffer.
func (s *Server) registerLogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-logs",
		Method:      http.MethodGet,
		Path:        "/api/logs",
		Summary:     "Logs",
		Description: "Recent log entries, oldest first",
		Tags:        []string{"logs"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(ctx context.Context, input *LogsRequest) (*LogsResponse, error) {
		resp := &LogsResponse{}
		buffer := logging.GetBuffer()
		if buffer == nil {
			return resp, nil
		}
		entries := buffer.ReadAll()
		if input.Limit > 0 && len(entries) > input.Limit {
			entries = entries[len(entries)-input.Limit:]
		}
		resp.Body.Entries = entries
		resp.Body.Count = len(entries)
		return resp, nil
	})
}
