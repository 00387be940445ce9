package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	"github.com/frontporchlabs/rooflights/internal/command"
)

// CommandRequest is one command line to execute.
type CommandRequest struct {
	Body struct {
		Command string `json:"command" minLength:"1" doc:"Command line, e.g. \"set_color 1 0 0\""`
	}
}

// CommandResponse wraps a command result.
type CommandResponse struct {
	Body command.Result
}

// CommandListResponse lists the available command names.
type CommandListResponse struct {
	Body struct {
		Commands []string `json:"commands" doc:"Registered command names"`
	}
}

func (s *Server) registerCommandRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "execute-command",
		Method:      http.MethodPost,
		Path:        "/api/command",
		Summary:     "Execute Command",
		Description: "Execute one text command against the lighting controller",
		Tags:        []string{"commands"},
		Security:    withAuth(),
		Errors:      []int{401, 422},
	}, func(ctx context.Context, input *CommandRequest) (*CommandResponse, error) {
		result := s.options.Commands.Execute(input.Body.Command)
		if !result.OK {
			s.logger.Warn("Command failed", "command", input.Body.Command, "detail", result.Output)
		}
		return &CommandResponse{Body: result}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "list-commands",
		Method:      http.MethodGet,
		Path:        "/api/commands",
		Summary:     "List Commands",
		Description: "List the available command names",
		Tags:        []string{"commands"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(ctx context.Context, input *struct{}) (*CommandListResponse, error) {
		names := s.options.Commands.Names()
		sort.Strings(names)
		resp := &CommandListResponse{}
		resp.Body.Commands = names
		return resp, nil
	})
}
