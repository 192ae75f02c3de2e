package rag

import "strings"

// DefaultChunkSize is the character budget for one retrieval chunk.
// Roughly 250 tokens, small enough to stay focused for similarity search.
const DefaultChunkSize = 1000

// ChunkText splits text into sentence-respecting chunks of at most maxSize
// characters. Sentences are detected on a trailing '.', '?' or '!' followed
// by whitespace; abbreviations are not handled specially. A single sentence
// longer than maxSize is emitted whole as its own oversized chunk rather
// than being cut mid-sentence.
func ChunkText(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}

	sentences := splitSentences(text)

	var chunks []string
	var current strings.Builder

	for _, sentence := range sentences {
		if current.Len() == 0 {
			current.WriteString(sentence)
			continue
		}
		// +1 for the joining space
		if current.Len()+1+len(sentence) > maxSize {
			chunks = append(chunks, current.String())
			current.Reset()
			current.WriteString(sentence)
			continue
		}
		current.WriteByte(' ')
		current.WriteString(sentence)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// splitSentences breaks text on sentence-terminating punctuation followed by
// whitespace. The terminator stays attached to its sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if r == '.' || r == '?' || r == '!' {
			if i+1 < len(runes) && isSpace(runes[i+1]) {
				sentence := strings.TrimSpace(current.String())
				if sentence != "" {
					sentences = append(sentences, sentence)
				}
				current.Reset()
				// Skip the whitespace run separating sentences
				for i+1 < len(runes) && isSpace(runes[i+1]) {
					i++
				}
			}
		}
	}

	if tail := strings.TrimSpace(current.String()); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
