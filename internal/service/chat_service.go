package service

import (
	"context"

	"study-tutor-be/internal/config"
	"study-tutor-be/internal/dto"
	"study-tutor-be/internal/pkg/logger"
	"study-tutor-be/internal/repository/specification"
	"study-tutor-be/internal/repository/unitofwork"
	"study-tutor-be/pkg/embedding"
	"study-tutor-be/pkg/rag/prompt"
	"study-tutor-be/pkg/rag/response"

	"github.com/google/uuid"
)

type IChatService interface {
	Ask(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	responseGenerator *response.Generator
	logger            logger.ILogger
	ragConfig         config.RAGConfig
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	responseGenerator *response.Generator,
	log logger.ILogger,
	ragConfig config.RAGConfig,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		responseGenerator: responseGenerator,
		logger:            log,
		ragConfig:         ragConfig,
	}
}

// Ask answers a question grounded on the subject's indexed resources. With no
// chunks above the threshold the model still answers, prefixed by the
// fallback phrase per the prompt instructions. Exchanges are not persisted.
func (s *chatService) Ask(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := uow.SubjectRepository().FindOne(ctx,
		specification.ByID{ID: req.SubjectId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, nil
	}

	queryEmbedding, err := s.embeddingProvider.Generate(ctx, req.Question, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	scored, err := uow.ResourceEmbeddingRepository().SearchSimilarWithScore(
		ctx,
		queryEmbedding.Embedding.Values,
		s.ragConfig.TopK,
		req.SubjectId,
		s.ragConfig.SimilarityThreshold,
	)
	if err != nil {
		return nil, err
	}

	contextChunks := make([]string, len(scored))
	sources := make([]dto.ChatSourceDTO, len(scored))
	for i, sc := range scored {
		contextChunks[i] = sc.Embedding.Content
		sources[i] = dto.ChatSourceDTO{
			Content:    sc.Embedding.Content,
			Similarity: sc.Similarity,
		}
	}

	s.logger.Info("ChatService", "Retrieved context for question", map[string]interface{}{
		"subject_id": req.SubjectId,
		"chunks":     len(contextChunks),
	})

	systemInstruction := prompt.NewGroundedBuilder(contextChunks).Build()

	answer, err := s.responseGenerator.Generate(ctx, systemInstruction, req.Question)
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Answer:  answer,
		Sources: sources,
	}, nil
}
