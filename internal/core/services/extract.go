package services

import (
	"regexp"
	"strings"

	"github.com/formpilot/formpilot/internal/core/domain"
)

// Pattern extraction is the last-resort answer path when no language
// model is reachable. It recognises the common personal-info field
// kinds and pulls a matching value straight out of the retrieved text.
var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`[+]?\d[\d\s()-]{8,}`)
	urlPattern   = regexp.MustCompile(`https?://[^\s,)]+`)
)

// extractAnswer applies the pattern matching the query kind to the
// retrieved chunks, in rank order. Returns the sentinel when nothing
// matches.
func extractAnswer(req domain.QueryRequest, hits []domain.RetrievedChunk) string {
	pieces := make([]string, len(hits))
	for i, hit := range hits {
		pieces[i] = hit.Record.Text
	}
	text := strings.Join(pieces, "\n\n")

	wanted := strings.ToLower(req.Text + " " + req.FieldContext)

	switch {
	case containsAny(wanted, "email", "mail"):
		if email := pickMatch(emailPattern.FindAllString(text, -1), req.PartialInput); email != "" {
			return email
		}

	case containsAny(wanted, "phone", "mobile", "contact", "number"):
		if m := phonePattern.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}

	case containsAny(wanted, "website", "url", "link", "github", "linkedin", "portfolio"):
		if url := pickURL(urlPattern.FindAllString(text, -1), wanted); url != "" {
			return url
		}
	}

	return domain.NotFoundAnswer
}

// pickMatch prefers a candidate containing the user's partial input,
// falling back to the first candidate.
func pickMatch(candidates []string, partial string) string {
	if len(candidates) == 0 {
		return ""
	}
	if partial != "" {
		lower := strings.ToLower(partial)
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c), lower) {
				return c
			}
		}
	}
	return candidates[0]
}

// pickURL prefers a URL whose host matches a site named in the query.
func pickURL(urls []string, wanted string) string {
	if len(urls) == 0 {
		return ""
	}
	for _, site := range []string{"github", "linkedin"} {
		if !strings.Contains(wanted, site) {
			continue
		}
		for _, u := range urls {
			if strings.Contains(strings.ToLower(u), site) {
				return u
			}
		}
	}
	return urls[0]
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
