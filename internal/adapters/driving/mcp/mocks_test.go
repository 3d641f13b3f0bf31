package mcp

import (
	"context"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driving"
)

// mockQueryService is a test double for driving.QueryService.
type mockQueryService struct {
	answer domain.Answer
	err    error
	gotReq domain.QueryRequest
}

var _ driving.QueryService = (*mockQueryService)(nil)

func (m *mockQueryService) Query(_ context.Context, req domain.QueryRequest) (domain.Answer, error) {
	m.gotReq = req
	return m.answer, m.err
}

func (m *mockQueryService) CheckLocalModel(context.Context) bool {
	return false
}

// mockDocumentService is a test double for driving.DocumentService.
type mockDocumentService struct {
	docs []domain.Document
	err  error
}

var _ driving.DocumentService = (*mockDocumentService)(nil)

func (m *mockDocumentService) Upload(context.Context, string, []byte) (*domain.Document, error) {
	return nil, nil
}

func (m *mockDocumentService) Delete(context.Context, string) error {
	return nil
}

func (m *mockDocumentService) List(context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}
