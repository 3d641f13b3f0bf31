package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formpilot/formpilot/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	t.Run("nil query service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingQueryService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Query: &mockQueryService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil query service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingQueryService)
	})

	t.Run("query only is valid", func(t *testing.T) {
		ports := &Ports{
			Query: &mockQueryService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Query:    &mockQueryService{},
			Document: &mockDocumentService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}

func TestHandleQuery(t *testing.T) {
	query := &mockQueryService{
		answer: domain.Answer{
			Text:       "jane@example.com",
			SourceFile: "resume.pdf",
			Source:     domain.AnswerFromLocal,
			Confidence: 0.91,
		},
	}
	server, err := NewServer(&Ports{Query: query})
	require.NoError(t, err)

	_, out, err := server.handleQuery(context.Background(), nil, QueryInput{
		Question:     "What is your email?",
		FieldContext: "Email address",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", out.Answer)
	assert.Equal(t, "resume.pdf", out.SourceFile)
	assert.True(t, out.Found)
	assert.Equal(t, "What is your email?", query.gotReq.Text)
	assert.Equal(t, "Email address", query.gotReq.FieldContext)
}

func TestHandleQuery_NotFound(t *testing.T) {
	query := &mockQueryService{answer: domain.Answer{Text: domain.NotFoundAnswer}}
	server, err := NewServer(&Ports{Query: query})
	require.NoError(t, err)

	_, out, err := server.handleQuery(context.Background(), nil, QueryInput{Question: "fax number"})
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Equal(t, domain.NotFoundAnswer, out.Answer)
}

func TestHandleListDocuments(t *testing.T) {
	docs := &mockDocumentService{
		docs: []domain.Document{
			{Name: "resume.pdf", Format: domain.FormatPDF, Size: 1024},
			{Name: "notes.txt", Format: domain.FormatTXT, Size: 12},
		},
	}
	server, err := NewServer(&Ports{Query: &mockQueryService{}, Document: docs})
	require.NoError(t, err)

	_, out, err := server.handleListDocuments(context.Background(), nil, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "resume.pdf", out.Documents[0].Name)
	assert.Equal(t, "pdf", out.Documents[0].Format)
}
