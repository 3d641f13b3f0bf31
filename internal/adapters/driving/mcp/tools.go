package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/formpilot/formpilot/internal/core/domain"
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Question     string `json:"question" jsonschema:"the form field question to answer from the knowledge base"`
	FieldContext string `json:"field_context,omitempty" jsonschema:"surrounding form context such as the field label"`
	PartialInput string `json:"partial_input,omitempty" jsonschema:"text the user already typed into the field, used to narrow candidates"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Answer     string  `json:"answer"`
	SourceFile string  `json:"source_file,omitempty"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
	Found      bool    `json:"found"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents one knowledge base document.
type DocumentOutput struct {
	Name     string `json:"name"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query",
		Description: "Answer a form field question from the personal knowledge base",
	}, s.handleQuery)

	if s.ports.Document != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_documents",
			Description: "List the documents in the personal knowledge base",
		}, s.handleListDocuments)
	}
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	answer, err := s.ports.Query.Query(ctx, domain.QueryRequest{
		Text:         input.Question,
		FieldContext: input.FieldContext,
		PartialInput: input.PartialInput,
	})
	if err != nil {
		return nil, QueryOutput{}, err
	}

	return nil, QueryOutput{
		Answer:     answer.Text,
		SourceFile: answer.SourceFile,
		Source:     string(answer.Source),
		Confidence: answer.Confidence,
		Found:      answer.Text != domain.NotFoundAnswer,
	}, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = DocumentOutput{
			Name:     docs[i].Name,
			Format:   string(docs[i].Format),
			Size:     docs[i].Size,
			Modified: docs[i].ModTime.Format("2006-01-02 15:04:05"),
		}
	}

	return nil, output, nil
}
