package prompt

import "strings"

// FallbackPhrase is the exact wording the assistant is instructed to lead
// with when the retrieved context cannot answer the question.
const FallbackPhrase = "I couldn't find the answer in your notes, but here is what I know generally:"

// GroundedBuilder assembles the system instruction for a grounded chat turn.
type GroundedBuilder struct {
	contextChunks []string
}

func NewGroundedBuilder(contextChunks []string) *GroundedBuilder {
	return &GroundedBuilder{
		contextChunks: contextChunks,
	}
}

// Build produces the system instruction: role, grounding rule, fallback
// phrase, citation nudge, then the context block. An empty context block is
// valid, the model is still invoked and falls back to general knowledge.
func (b *GroundedBuilder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("You are a helpful study assistant. Use the following context from the user's study materials to answer their question.\n")
	prompt.WriteString("If the answer is not in the context, say \"")
	prompt.WriteString(FallbackPhrase)
	prompt.WriteString("\" and then answer from your general knowledge.\n")
	prompt.WriteString("Always cite the source concept if possible.\n")
	prompt.WriteString("\nContext:\n")
	prompt.WriteString(strings.Join(b.contextChunks, "\n\n"))
	prompt.WriteString("\n")

	return prompt.String()
}
