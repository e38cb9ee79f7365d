package chat

import (
	"fmt"
	"strings"
	"testing"
)

func TestSplit_ShortTextIsOneChunk(t *testing.T) {
	chunks := Split("hello\nworld", 4000)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "hello\nworld" {
		t.Errorf("short text must pass through unchanged, got %q", chunks[0])
	}
}

func TestSplit_EmptyText(t *testing.T) {
	if chunks := Split("", 4000); chunks != nil {
		t.Errorf("expected no chunks for empty text, got %v", chunks)
	}
}

func TestSplit_BreaksOnLineBoundaries(t *testing.T) {
	var lines []string
	for i := 0; i < 200; i++ {
		lines = append(lines, fmt.Sprintf("%d. Operator Number %d\n   Flights: %d | IATA: OP", i+1, i+1, i*3))
	}
	text := strings.Join(lines, "\n")
	limit := 500

	chunks := Split(text, limit)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for %d bytes at limit %d", len(text), limit)
	}

	for i, c := range chunks {
		if len(c) > limit {
			t.Errorf("chunk %d exceeds limit: %d > %d", i, len(c), limit)
		}
		if i > 0 && !strings.HasPrefix(c, ContinuationMarker) {
			t.Errorf("chunk %d missing continuation marker", i)
		}
		if i == 0 && strings.HasPrefix(c, ContinuationMarker) {
			t.Errorf("first chunk must not carry the marker")
		}
	}

	// Content must be preserved in order: stripping markers and joining
	// on the boundary newlines reconstructs the input.
	stripped := make([]string, len(chunks))
	for i, c := range chunks {
		stripped[i] = strings.TrimPrefix(c, ContinuationMarker)
	}
	if rejoined := strings.Join(stripped, "\n"); rejoined != text {
		t.Error("splitting lost or reordered content")
	}
}

func TestSplit_OverlongLineIsCutMidLine(t *testing.T) {
	text := strings.Repeat("x", 9000)

	chunks := Split(text, 4000)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks for a 9000-byte line, got %d", len(chunks))
	}

	var rebuilt strings.Builder
	for i, c := range chunks {
		if len(c) > 4000 {
			t.Errorf("chunk %d exceeds limit: %d", i, len(c))
		}
		rebuilt.WriteString(strings.TrimPrefix(c, ContinuationMarker))
	}
	if rebuilt.String() != text {
		t.Error("mid-line cuts lost content")
	}
}

func TestSplit_DefaultLimit(t *testing.T) {
	text := strings.Repeat("line of output\n", 600)

	chunks := Split(text, 0)
	for i, c := range chunks {
		if len(c) > DefaultChunkLimit {
			t.Errorf("chunk %d exceeds default limit: %d", i, len(c))
		}
	}
	if len(chunks) < 2 {
		t.Errorf("expected the default limit to apply, got %d chunks", len(chunks))
	}
}
