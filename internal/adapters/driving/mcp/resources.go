package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Formpilot resources.
	uriScheme = "formpilot://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing knowledge base documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Documents in the personal knowledge base",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Static resource for index status.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index",
		Name:        "index",
		Description: "Vector index snapshot status",
		MIMEType:    "application/json",
	}, s.handleIndexResource)
}

// handleDocumentsResource returns a JSON listing of knowledge base documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	text := "[]"
	if s.ports.Document != nil {
		docs, err := s.ports.Document.List(ctx)
		if err != nil {
			return nil, err
		}

		out := make([]DocumentOutput, len(docs))
		for i := range docs {
			out[i] = DocumentOutput{
				Name:     docs[i].Name,
				Format:   string(docs[i].Format),
				Size:     docs[i].Size,
				Modified: docs[i].ModTime.Format("2006-01-02 15:04:05"),
			}
		}

		data, err := json.Marshal(out)
		if err != nil {
			return nil, err
		}
		text = string(data)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}

// indexStatus is the JSON shape of the index resource.
type indexStatus struct {
	Chunks     int    `json:"chunks"`
	Model      string `json:"model"`
	Version    int    `json:"version"`
	BuiltAt    string `json:"built_at,omitempty"`
	Stale      bool   `json:"stale"`
	Dimensions int    `json:"dimensions"`
}

// handleIndexResource returns the current snapshot status.
func (s *Server) handleIndexResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	text := "{}"
	if s.ports.Index != nil {
		snap := s.ports.Index.Snapshot()
		status := indexStatus{
			Chunks:     len(snap.Records),
			Model:      snap.Model,
			Version:    snap.Version,
			Stale:      s.ports.Index.Stale(),
			Dimensions: snap.Dimensions,
		}
		if !snap.BuiltAt.IsZero() {
			status.BuiltAt = snap.BuiltAt.Format("2006-01-02 15:04:05")
		}

		data, err := json.Marshal(status)
		if err != nil {
			return nil, err
		}
		text = string(data)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}
