package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/frontporchlabs/rooflights/internal/lighting"
	"github.com/frontporchlabs/rooflights/internal/settings"
)

// StatusResponse is the diagnostic snapshot of the controller.
type StatusResponse struct {
	Body lighting.Status
}

// SettingsResponse carries the persisted tunables.
type SettingsResponse struct {
	Body settings.Settings
}

func (s *Server) registerStatusRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/api/status",
		Summary:     "Status",
		Description: "Current controller state: view mode, time of day, sensors, transformer",
		Tags:        []string{"status"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(ctx context.Context, input *struct{}) (*StatusResponse, error) {
		return &StatusResponse{Body: s.options.Controller.Snapshot()}, nil
	})
}

func (s *Server) registerSettingsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-settings",
		Method:      http.MethodGet,
		Path:        "/api/settings",
		Summary:     "Settings",
		Description: "The persisted tunables, as stored on disk",
		Tags:        []string{"settings"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(ctx context.Context, input *struct{}) (*SettingsResponse, error) {
		return &SettingsResponse{Body: s.options.Settings.Get()}, nil
	})
}
