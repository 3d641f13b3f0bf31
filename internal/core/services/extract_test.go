package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formpilot/formpilot/internal/core/domain"
)

func extractionHits(texts ...string) []domain.RetrievedChunk {
	hits := make([]domain.RetrievedChunk, len(texts))
	for i, text := range texts {
		hits[i] = domain.RetrievedChunk{
			Record:     domain.EmbeddingRecord{Text: text, Ordinal: i},
			Similarity: 1.0 - float64(i)*0.1,
		}
	}
	return hits
}

func TestExtractAnswer(t *testing.T) {
	contact := extractionHits(
		"Email: jane@example.com\nPhone: +1 555 123 4567",
		"GitHub: https://github.com/janedoe\nLinkedIn: https://linkedin.com/in/janedoe",
	)

	cases := []struct {
		name string
		req  domain.QueryRequest
		hits []domain.RetrievedChunk
		want string
	}{
		{
			name: "email from question",
			req:  domain.QueryRequest{Text: "What is my email?"},
			want: "jane@example.com",
		},
		{
			name: "email from field context",
			req:  domain.QueryRequest{Text: "fill this", FieldContext: "E-mail address"},
			want: "jane@example.com",
		},
		{
			name: "phone",
			req:  domain.QueryRequest{Text: "What is my phone number?"},
			want: "+1 555 123 4567",
		},
		{
			name: "github url preferred for github fields",
			req:  domain.QueryRequest{Text: "GitHub profile URL?"},
			want: "https://github.com/janedoe",
		},
		{
			name: "linkedin url preferred for linkedin fields",
			req:  domain.QueryRequest{Text: "LinkedIn?"},
			want: "https://linkedin.com/in/janedoe",
		},
		{
			name: "first url for generic website fields",
			req:  domain.QueryRequest{Text: "Personal website?"},
			want: "https://github.com/janedoe",
		},
		{
			name: "unknown field kind",
			req:  domain.QueryRequest{Text: "What is my shoe size?"},
			want: domain.NotFoundAnswer,
		},
		{
			name: "known kind with no match",
			req:  domain.QueryRequest{Text: "What is my fax number?"},
			hits: extractionHits("Email: jane@example.com"),
			want: domain.NotFoundAnswer,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hits := tc.hits
			if hits == nil {
				hits = contact
			}
			assert.Equal(t, tc.want, extractAnswer(tc.req, hits))
		})
	}
}

func TestPickMatchPrefersPartialInput(t *testing.T) {
	candidates := []string{"jane@example.com", "j.doe@corp.example"}

	assert.Equal(t, "j.doe@corp.example", pickMatch(candidates, "CORP"))
	assert.Equal(t, "jane@example.com", pickMatch(candidates, ""))
	assert.Equal(t, "jane@example.com", pickMatch(candidates, "nomatch"))
	assert.Empty(t, pickMatch(nil, "corp"))
}
