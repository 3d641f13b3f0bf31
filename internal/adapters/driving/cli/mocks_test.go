package cli

import (
	"context"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driving"
)

// stubQueryService returns a fixed answer.
type stubQueryService struct {
	answer domain.Answer
	err    error
}

var _ driving.QueryService = (*stubQueryService)(nil)

func (s *stubQueryService) Query(context.Context, domain.QueryRequest) (domain.Answer, error) {
	return s.answer, s.err
}

func (s *stubQueryService) CheckLocalModel(context.Context) bool { return false }

// stubIndexService exposes a canned snapshot.
type stubIndexService struct {
	snap  *domain.Snapshot
	stats *driving.RebuildStats
	err   error
}

var _ driving.IndexService = (*stubIndexService)(nil)

func (s *stubIndexService) Rebuild(context.Context) (*driving.RebuildStats, error) {
	return s.stats, s.err
}

func (s *stubIndexService) Snapshot() *domain.Snapshot {
	if s.snap == nil {
		return domain.EmptySnapshot()
	}
	return s.snap
}

func (s *stubIndexService) Load(context.Context) error { return nil }
func (s *stubIndexService) Stale() bool                { return false }

// stubDocumentService records uploads.
type stubDocumentService struct {
	docs     []domain.Document
	uploaded []string
	err      error
}

var _ driving.DocumentService = (*stubDocumentService)(nil)

func (s *stubDocumentService) Upload(_ context.Context, name string, content []byte) (*domain.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.uploaded = append(s.uploaded, name)
	format, _ := domain.FormatFromName(name)
	return &domain.Document{Name: name, Format: format, Size: int64(len(content))}, nil
}

func (s *stubDocumentService) Delete(context.Context, string) error { return s.err }

func (s *stubDocumentService) List(context.Context) ([]domain.Document, error) {
	return s.docs, s.err
}

// stubFieldMemoryService is a no-op field memory.
type stubFieldMemoryService struct {
	cleared []string
}

var _ driving.FieldMemoryService = (*stubFieldMemoryService)(nil)

func (s *stubFieldMemoryService) IsRejected(context.Context, string, string) bool { return false }
func (s *stubFieldMemoryService) Reject(context.Context, string, string) error    { return nil }

func (s *stubFieldMemoryService) ClearRejections(_ context.Context, pageURL string) error {
	s.cleared = append(s.cleared, pageURL)
	return nil
}

func (s *stubFieldMemoryService) RecordAccepted(context.Context, string, string) error { return nil }

func (s *stubFieldMemoryService) AcceptedFor(context.Context, string) (string, bool) {
	return "", false
}

// stubSettingsService serves defaults.
type stubSettingsService struct {
	settings *domain.AppSettings
	saved    *domain.AppSettings
}

var _ driving.SettingsService = (*stubSettingsService)(nil)

func (s *stubSettingsService) Get() (*domain.AppSettings, error) {
	if s.settings == nil {
		return domain.DefaultAppSettings(), nil
	}
	return s.settings, nil
}

func (s *stubSettingsService) Save(settings *domain.AppSettings) error {
	s.saved = settings
	return nil
}

// setupTestServices injects stub services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	prev := Services{
		Query:       queryService,
		Index:       indexService,
		Document:    documentService,
		FieldMemory: fieldMemoryService,
		Settings:    settingsService,
	}

	SetServices(Services{
		Query: &stubQueryService{answer: domain.Answer{
			Text:       "jane@example.com",
			SourceFile: "resume.pdf",
			Source:     domain.AnswerFromLocal,
			Confidence: 0.88,
		}},
		Index:       &stubIndexService{stats: &driving.RebuildStats{Documents: 1, Chunks: 2, Embedded: 2}},
		Document:    &stubDocumentService{},
		FieldMemory: &stubFieldMemoryService{},
		Settings:    &stubSettingsService{},
	})

	return func() { SetServices(prev) }
}
