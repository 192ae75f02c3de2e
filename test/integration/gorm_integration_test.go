package integration

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"testing"

	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/repository/specification"
	"study-tutor-be/internal/repository/unitofwork"
	"study-tutor-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.TermRepository())
	assert.NotNil(t, uow.SubjectRepository())
	assert.NotNil(t, uow.ResourceRepository())
	assert.NotNil(t, uow.ResourceEmbeddingRepository())
	assert.NotNil(t, uow.NoteRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Embedding Repository", func(t *testing.T) {
		count, err := uow.ResourceEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ResourceEmbedding count: %d", count)
	})

	t.Run("Check Transactional Ingestion", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		term := &entity.Term{
			Id:     uuid.New(),
			Title:  "Integration Term " + uuid.New().String(),
			UserId: userId,
		}
		err = uow.TermRepository().Create(ctx, term)
		assert.NoError(t, err)

		subject := &entity.Subject{
			Id:     uuid.New(),
			Title:  "Integration Subject",
			Color:  "#4f46e5",
			TermId: term.Id,
			UserId: userId,
		}
		err = uow.SubjectRepository().Create(ctx, subject)
		assert.NoError(t, err)

		resource := &entity.Resource{
			Id:             uuid.New(),
			Title:          "integration.pdf",
			Type:           entity.ResourceTypePDF,
			ContentSummary: "Integration test resource",
			SubjectId:      subject.Id,
			UserId:         userId,
		}
		err = uow.ResourceRepository().Create(ctx, resource)
		assert.NoError(t, err)

		// Unit vectors in the plane of the first two axes. Cosine similarity
		// against the query (the first axis) equals the first component.
		unitVec := func(cos float64) []float32 {
			v := make([]float32, 768)
			v[0] = float32(cos)
			v[1] = float32(math.Sqrt(1 - cos*cos))
			return v
		}
		query := unitVec(1.0)

		similarities := []float64{1.0, 0.8, 0.6, 0.3}
		embeddings := make([]*entity.ResourceEmbedding, len(similarities))
		for i, sim := range similarities {
			embeddings[i] = &entity.ResourceEmbedding{
				Id:             uuid.New(),
				Content:        fmt.Sprintf("chunk %d", i+1),
				EmbeddingValue: unitVec(sim),
				ResourceId:     resource.Id,
				ChunkIndex:     i,
			}
		}
		err = uow.ResourceEmbeddingRepository().CreateBulk(ctx, embeddings)
		assert.NoError(t, err)

		t.Run("Similarity Search Within Transaction", func(t *testing.T) {
			scored, err := uow.ResourceEmbeddingRepository().SearchSimilarWithScore(
				ctx, query, 5, subject.Id, 0.5,
			)
			assert.NoError(t, err)
			if assert.Len(t, scored, 3) {
				assert.Equal(t, "chunk 1", scored[0].Embedding.Content)
				assert.InDelta(t, 1.0, scored[0].Similarity, 0.01)
				assert.InDelta(t, 0.8, scored[1].Similarity, 0.01)
				assert.InDelta(t, 0.6, scored[2].Similarity, 0.01)
			}
		})

		t.Run("Raising Threshold Never Increases Results", func(t *testing.T) {
			lower, err := uow.ResourceEmbeddingRepository().SearchSimilarWithScore(
				ctx, query, 5, subject.Id, 0.5,
			)
			assert.NoError(t, err)
			higher, err := uow.ResourceEmbeddingRepository().SearchSimilarWithScore(
				ctx, query, 5, subject.Id, 0.7,
			)
			assert.NoError(t, err)

			assert.Len(t, lower, 3)
			assert.Len(t, higher, 2)
			assert.LessOrEqual(t, len(higher), len(lower))
			for _, sc := range higher {
				assert.GreaterOrEqual(t, sc.Similarity, 0.7)
			}
		})

		t.Run("Raising TopK Never Decreases Results", func(t *testing.T) {
			narrow, err := uow.ResourceEmbeddingRepository().SearchSimilarWithScore(
				ctx, query, 2, subject.Id, 0.5,
			)
			assert.NoError(t, err)
			wide, err := uow.ResourceEmbeddingRepository().SearchSimilarWithScore(
				ctx, query, 5, subject.Id, 0.5,
			)
			assert.NoError(t, err)

			assert.Len(t, narrow, 2)
			assert.Len(t, wide, 3)
			assert.GreaterOrEqual(t, len(wide), len(narrow))
			// The narrow result is the head of the wide ranking.
			assert.Equal(t, wide[0].Embedding.Content, narrow[0].Embedding.Content)
			assert.Equal(t, wide[1].Embedding.Content, narrow[1].Embedding.Content)
		})

		t.Run("Subject Scoping Excludes Other Subjects", func(t *testing.T) {
			scored, err := uow.ResourceEmbeddingRepository().SearchSimilarWithScore(
				ctx, query, 5, uuid.New(), 0.5,
			)
			assert.NoError(t, err)
			assert.Empty(t, scored)
		})

		t.Run("Ownership Lookup", func(t *testing.T) {
			found, err := uow.ResourceRepository().FindOne(ctx,
				specification.ByID{ID: resource.Id},
				specification.ByUserID{UserID: userId},
			)
			assert.NoError(t, err)
			if assert.NotNil(t, found) {
				assert.Equal(t, resource.Title, found.Title)
			}
		})
	})
}
