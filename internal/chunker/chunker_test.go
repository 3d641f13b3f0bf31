package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, c.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		c := New(WithChunkSize(500))
		if c.chunkSize != 500 {
			t.Errorf("expected chunkSize 500, got %d", c.chunkSize)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(150))
		if c.overlap >= c.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1))
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", c.overlap)
		}
	})
}

func TestSplit_Empty(t *testing.T) {
	c := New()
	chunks := c.Split("doc.txt", "")
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty text, got %d", len(chunks))
	}
}

func TestSplit_ShortText(t *testing.T) {
	c := New()
	text := "This fits into a single chunk."

	chunks := c.Split("doc.txt", text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for short text, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Error("expected chunk text to match input")
	}
	if chunks[0].Ordinal != 0 {
		t.Errorf("expected ordinal 0, got %d", chunks[0].Ordinal)
	}
	if chunks[0].Source != "doc.txt" {
		t.Errorf("expected source 'doc.txt', got %q", chunks[0].Source)
	}
}

func TestSplit_ExactChunkSize(t *testing.T) {
	c := New()
	text := strings.Repeat("a", DefaultChunkSize)

	chunks := c.Split("doc.txt", text)
	if len(chunks) != 1 {
		t.Errorf("expected 1 chunk for text of exactly chunk size, got %d", len(chunks))
	}
}

func TestSplit_Overlap(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(20))
	text := strings.Repeat("x", 250)

	chunks := c.Split("doc.txt", text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Text
		tail := prev[len(prev)-20:]
		if !strings.HasPrefix(chunks[i].Text, tail) {
			t.Errorf("chunk %d does not overlap previous by 20 characters", i)
		}
	}
}

func TestSplit_Reconstruction(t *testing.T) {
	// Dropping the leading overlap from every chunk after the first and
	// concatenating must reproduce the original text exactly.
	c := New()

	lengths := []int{1, 999, 1000, 1001, 1800, 1801, 5000, 12345}
	for _, n := range lengths {
		var b strings.Builder
		for i := 0; b.Len() < n; i++ {
			b.WriteByte(byte('a' + i%26))
		}
		text := b.String()[:n]

		chunks := c.Split("doc.txt", text)

		var rebuilt strings.Builder
		for i, chunk := range chunks {
			if i == 0 {
				rebuilt.WriteString(chunk.Text)
				continue
			}
			rebuilt.WriteString(chunk.Text[DefaultChunkOverlap:])
		}

		if rebuilt.String() != text {
			t.Errorf("length %d: reconstruction mismatch", n)
		}
	}
}

func TestSplit_ChunkCount(t *testing.T) {
	c := New()

	tests := []struct {
		length int
		want   int
	}{
		{1, 1},
		{999, 1},
		{1000, 1},
		{1001, 2},
		{1800, 2},
		{1801, 3},
		{2600, 3},
		{2601, 4},
	}

	for _, tt := range tests {
		text := strings.Repeat("z", tt.length)
		chunks := c.Split("doc.txt", text)
		if len(chunks) != tt.want {
			t.Errorf("length %d: expected %d chunks, got %d", tt.length, tt.want, len(chunks))
		}
	}
}

func TestSplit_MultibyteText(t *testing.T) {
	// Size and overlap count characters, so a window boundary must
	// never land inside a multibyte rune.
	c := New()
	text := strings.Repeat("a", 999) + "é" + strings.Repeat("日本語テキスト", 100)

	chunks := c.Split("doc.txt", text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	total := 0
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk.Text) {
			t.Fatalf("chunk %d is not valid UTF-8", i)
		}
		n := utf8.RuneCountInString(chunk.Text)
		if n > DefaultChunkSize {
			t.Errorf("chunk %d has %d characters, want at most %d", i, n, DefaultChunkSize)
		}
		if i == 0 {
			total += n
			continue
		}
		prev := []rune(chunks[i-1].Text)
		tail := string(prev[len(prev)-DefaultChunkOverlap:])
		if !strings.HasPrefix(chunk.Text, tail) {
			t.Errorf("chunk %d does not overlap previous by %d characters", i, DefaultChunkOverlap)
		}
		total += n - DefaultChunkOverlap
	}

	if total != utf8.RuneCountInString(text) {
		t.Errorf("chunks cover %d characters, input has %d", total, utf8.RuneCountInString(text))
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c := New()
	text := strings.Repeat("deterministic ", 300)

	first := c.Split("doc.txt", text)
	second := c.Split("doc.txt", text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text || first[i].Fingerprint != second[i].Fingerprint {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplit_FingerprintSharedAcrossSources(t *testing.T) {
	c := New()
	text := "Contact: jane@example.com"

	a := c.Split("a.txt", text)
	b := c.Split("b.txt", text)

	if a[0].Fingerprint != b[0].Fingerprint {
		t.Error("identical text in different sources should share a fingerprint")
	}
}
