package rag

import (
	"fmt"
	"strings"
	"testing"
)

func TestChunkTextRoundTrip(t *testing.T) {
	// Joining all chunks with a single space must reproduce the sentence
	// sequence of the input.
	input := "First sentence here. Second one follows! Third asks a question? Fourth ends it."
	chunks := ChunkText(input, 40)

	joined := strings.Join(chunks, " ")
	if joined != input {
		t.Errorf("round trip mismatch:\ngot  %q\nwant %q", joined, input)
	}

	for i, c := range chunks {
		if c == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestChunkTextSizeBound(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&sb, "Sentence number %d carries a little bit of content. ", i)
	}

	maxSize := 1000
	chunks := ChunkText(sb.String(), maxSize)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > maxSize {
			t.Errorf("chunk %d exceeds maxSize: len=%d", i, len(c))
		}
	}
}

func TestChunkTextOversizedSentence(t *testing.T) {
	// A single sentence longer than maxSize is kept whole, never truncated.
	long := strings.Repeat("word ", 300) + "end."
	chunks := ChunkText("Short lead. "+long, 100)

	found := false
	for _, c := range chunks {
		if strings.HasSuffix(c, "end.") && len(c) > 100 {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized sentence was not emitted whole: %d chunks", len(chunks))
	}
}

func TestChunkTextBoundaryAccumulation(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxSize    int
		wantChunks int
	}{
		{
			name:       "single short sentence",
			input:      "Just one.",
			maxSize:    1000,
			wantChunks: 1,
		},
		{
			name:       "two sentences fitting one chunk",
			input:      "One here. Two here.",
			maxSize:    1000,
			wantChunks: 1,
		},
		{
			name:       "two sentences forced apart",
			input:      "One here. Two here.",
			maxSize:    10,
			wantChunks: 2,
		},
		{
			name:       "empty input",
			input:      "",
			maxSize:    1000,
			wantChunks: 0,
		},
		{
			name:       "whitespace only",
			input:      "   \n\t  ",
			maxSize:    1000,
			wantChunks: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkText(tt.input, tt.maxSize)
			if len(got) != tt.wantChunks {
				t.Errorf("ChunkText() = %d chunks, want %d (%v)", len(got), tt.wantChunks, got)
			}
		})
	}
}

func TestChunkText2400CharsYieldsThreeChunks(t *testing.T) {
	// ~2400 characters of uniform sentences with maxSize 1000 packs into 3 chunks.
	var sb strings.Builder
	for sb.Len() < 2400 {
		sb.WriteString("This line of study material is eighty characters long when repeated verbatim.. ")
	}
	text := strings.TrimSpace(sb.String())

	chunks := ChunkText(text, 1000)
	if len(chunks) != 3 {
		t.Errorf("expected 3 chunks for %d chars, got %d", len(text), len(chunks))
	}
}
