package service

import (
	"context"
	"testing"

	"study-tutor-be/internal/dto"
	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/repository/contract"
	"study-tutor-be/pkg/llm"
	"study-tutor-be/pkg/rag/prompt"
	"study-tutor-be/pkg/rag/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeLLM records the history it was called with and returns a canned answer.
type fakeLLM struct {
	calls   int
	history []llm.Message
	answer  string
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	f.calls++
	f.history = history
	return f.answer, nil
}

func (f *fakeLLM) Generate(ctx context.Context, promptText string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: promptText}}, options...)
}

func newChatFixture(subject *entity.Subject, scored []*contract.ScoredResourceEmbedding, model *fakeLLM) (IChatService, *fakeUnitOfWork) {
	uow := &fakeUnitOfWork{
		subjects:   &fakeSubjectRepo{subject: subject},
		resources:  &fakeResourceRepo{},
		embeddings: &fakeEmbeddingRepo{scored: scored},
	}
	svc := NewChatService(
		&fakeUowFactory{uow: uow},
		&fakeEmbedder{},
		response.NewGenerator(model),
		nopLogger{},
		testRagConfig(),
	)
	return svc, uow
}

func TestAskGroundsAnswerInRetrievedChunks(t *testing.T) {
	userId := uuid.New()
	subject := testSubject(userId)
	scored := []*contract.ScoredResourceEmbedding{
		{
			Embedding:  &entity.ResourceEmbedding{Content: "The cell membrane controls what enters the cell."},
			Similarity: 0.91,
		},
		{
			Embedding:  &entity.ResourceEmbedding{Content: "Osmosis moves water across the membrane."},
			Similarity: 0.74,
		},
	}
	model := &fakeLLM{answer: "The membrane regulates transport."}
	svc, _ := newChatFixture(subject, scored, model)

	res, err := svc.Ask(context.Background(), userId, &dto.ChatRequest{
		SubjectId: subject.Id,
		Question:  "What does the cell membrane do?",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, res) {
		assert.Equal(t, "The membrane regulates transport.", res.Answer)
		if assert.Len(t, res.Sources, 2) {
			assert.Equal(t, "The cell membrane controls what enters the cell.", res.Sources[0].Content)
			assert.InDelta(t, 0.91, res.Sources[0].Similarity, 0.001)
			assert.InDelta(t, 0.74, res.Sources[1].Similarity, 0.001)
		}
	}

	// The model sees the system instruction first, then the raw question.
	assert.Equal(t, 1, model.calls)
	if assert.Len(t, model.history, 2) {
		assert.Contains(t, model.history[0].Content, "The cell membrane controls what enters the cell.")
		assert.Contains(t, model.history[0].Content, prompt.FallbackPhrase)
		assert.Equal(t, "What does the cell membrane do?", model.history[1].Content)
	}
}

func TestAskWithNoMatchesStillCallsModel(t *testing.T) {
	userId := uuid.New()
	subject := testSubject(userId)
	model := &fakeLLM{answer: prompt.FallbackPhrase + " France won the 1998 World Cup."}
	svc, _ := newChatFixture(subject, nil, model)

	res, err := svc.Ask(context.Background(), userId, &dto.ChatRequest{
		SubjectId: subject.Id,
		Question:  "Who won the 1998 World Cup?",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, res) {
		assert.Empty(t, res.Sources)
		assert.Contains(t, res.Answer, prompt.FallbackPhrase)
	}
	assert.Equal(t, 1, model.calls)
}

func TestAskUnknownSubjectReturnsNil(t *testing.T) {
	userId := uuid.New()
	model := &fakeLLM{answer: "should not be called"}
	svc, _ := newChatFixture(nil, nil, model)

	res, err := svc.Ask(context.Background(), userId, &dto.ChatRequest{
		SubjectId: uuid.New(),
		Question:  "Anything?",
	})

	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, 0, model.calls)
}
