package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"study-tutor-be/internal/config"
	"study-tutor-be/internal/dto"
	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/repository/contract"
	"study-tutor-be/internal/repository/specification"
	"study-tutor-be/internal/repository/unitofwork"
	"study-tutor-be/pkg/embedding"
	"study-tutor-be/pkg/rag/extract"
	"study-tutor-be/pkg/youtube"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// ---- in-memory fakes ----

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeSubjectRepo struct {
	subject *entity.Subject
}

func (r *fakeSubjectRepo) Create(context.Context, *entity.Subject) error     { return nil }
func (r *fakeSubjectRepo) Update(context.Context, *entity.Subject) error     { return nil }
func (r *fakeSubjectRepo) Delete(context.Context, uuid.UUID) error           { return nil }
func (r *fakeSubjectRepo) DeleteByTermId(context.Context, uuid.UUID) error   { return nil }
func (r *fakeSubjectRepo) FindOne(context.Context, ...specification.Specification) (*entity.Subject, error) {
	return r.subject, nil
}
func (r *fakeSubjectRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Subject, error) {
	return nil, nil
}
func (r *fakeSubjectRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeResourceRepo struct {
	created []*entity.Resource
	updated []*entity.Resource
	found   *entity.Resource
}

func (r *fakeResourceRepo) Create(_ context.Context, res *entity.Resource) error {
	r.created = append(r.created, res)
	return nil
}
func (r *fakeResourceRepo) Update(_ context.Context, res *entity.Resource) error {
	r.updated = append(r.updated, res)
	return nil
}
func (r *fakeResourceRepo) Delete(context.Context, uuid.UUID) error          { return nil }
func (r *fakeResourceRepo) DeleteBySubjectId(context.Context, uuid.UUID) error { return nil }
func (r *fakeResourceRepo) FindOne(context.Context, ...specification.Specification) (*entity.Resource, error) {
	return r.found, nil
}
func (r *fakeResourceRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Resource, error) {
	return nil, nil
}
func (r *fakeResourceRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeEmbeddingRepo struct {
	stored []*entity.ResourceEmbedding
	scored []*contract.ScoredResourceEmbedding
}

func (r *fakeEmbeddingRepo) Create(_ context.Context, e *entity.ResourceEmbedding) error {
	r.stored = append(r.stored, e)
	return nil
}
func (r *fakeEmbeddingRepo) CreateBulk(_ context.Context, embeddings []*entity.ResourceEmbedding) error {
	r.stored = append(r.stored, embeddings...)
	return nil
}
func (r *fakeEmbeddingRepo) Delete(context.Context, uuid.UUID) error             { return nil }
func (r *fakeEmbeddingRepo) DeleteByResourceId(context.Context, uuid.UUID) error { return nil }
func (r *fakeEmbeddingRepo) DeleteBySubjectId(context.Context, uuid.UUID) error  { return nil }
func (r *fakeEmbeddingRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ResourceEmbedding, error) {
	return r.stored, nil
}
func (r *fakeEmbeddingRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.stored)), nil
}
func (r *fakeEmbeddingRepo) SearchSimilarWithScore(context.Context, []float32, int, uuid.UUID, float64) ([]*contract.ScoredResourceEmbedding, error) {
	return r.scored, nil
}

type fakeUnitOfWork struct {
	subjects   *fakeSubjectRepo
	resources  *fakeResourceRepo
	embeddings *fakeEmbeddingRepo

	begun      int
	committed  int
	rolledBack int
}

func (u *fakeUnitOfWork) Begin(context.Context) error { u.begun++; return nil }
func (u *fakeUnitOfWork) Commit() error               { u.committed++; return nil }
func (u *fakeUnitOfWork) Rollback() error             { u.rolledBack++; return nil }

func (u *fakeUnitOfWork) TermRepository() contract.TermRepository       { return nil }
func (u *fakeUnitOfWork) SubjectRepository() contract.SubjectRepository { return u.subjects }
func (u *fakeUnitOfWork) ResourceRepository() contract.ResourceRepository {
	return u.resources
}
func (u *fakeUnitOfWork) ResourceEmbeddingRepository() contract.ResourceEmbeddingRepository {
	return u.embeddings
}
func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository { return nil }

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

// fakeEmbedder returns a fixed-size vector, failing for chunks that contain
// any of the configured markers.
type fakeEmbedder struct {
	calls    int
	failWhen []string
}

func (p *fakeEmbedder) Generate(_ context.Context, text string, _ string) (*embedding.EmbeddingResponse, error) {
	for _, marker := range p.failWhen {
		if strings.Contains(text, marker) {
			return nil, embedding.ErrEmbeddingService
		}
	}
	p.calls++
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: []float32{0.1, 0.2, 0.3},
		},
	}, nil
}

type fakeYoutube struct {
	videos   map[string]*youtube.VideoInfo
	playlist *youtube.Playlist
}

func (c *fakeYoutube) GetVideoInfo(_ context.Context, videoID string) (*youtube.VideoInfo, error) {
	info, ok := c.videos[videoID]
	if !ok {
		return nil, errors.New("video unavailable")
	}
	return info, nil
}

func (c *fakeYoutube) GetPlaylist(context.Context, string) (*youtube.Playlist, error) {
	return c.playlist, nil
}

type fakeStorage struct {
	uploads []string
	deletes []string
}

func (s *fakeStorage) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	s.uploads = append(s.uploads, key)
	return "http://localhost:3000/uploads/" + key, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	return nil
}

type fakeInternalPublisher struct {
	payloads [][]byte
}

func (p *fakeInternalPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

// ---- fixtures ----

func testRagConfig() config.RAGConfig {
	return config.RAGConfig{
		ChunkSize:           1000,
		SimilarityThreshold: 0.5,
		TopK:                5,
		PlaylistVideoLimit:  20,
	}
}

func newResourceFixture(subject *entity.Subject, yt youtube.Client, embedder embedding.EmbeddingProvider) (IResourceService, *fakeUnitOfWork, *fakeInternalPublisher, *fakeStorage) {
	uow := &fakeUnitOfWork{
		subjects:   &fakeSubjectRepo{subject: subject},
		resources:  &fakeResourceRepo{},
		embeddings: &fakeEmbeddingRepo{},
	}
	pub := &fakeInternalPublisher{}
	store := &fakeStorage{}
	svc := NewResourceService(
		&fakeUowFactory{uow: uow},
		extract.NewExtractor(yt),
		embedder,
		store,
		pub,
		nil,
		nopLogger{},
		testRagConfig(),
	)
	return svc, uow, pub, store
}

func testSubject(userId uuid.UUID) *entity.Subject {
	return &entity.Subject{
		Id:     uuid.New(),
		Title:  "Biology",
		TermId: uuid.New(),
		UserId: userId,
	}
}

// ---- tests ----

func TestAddLinkIngestsChunks(t *testing.T) {
	userId := uuid.New()
	subject := testSubject(userId)
	embedder := &fakeEmbedder{}
	svc, uow, pub, _ := newResourceFixture(subject, &fakeYoutube{}, embedder)

	// Three sentences of ~600 runes each cannot share a 1000-rune chunk.
	sentence := strings.Repeat("a", 599) + "."
	content := sentence + " " + sentence + " " + sentence

	res, err := svc.AddLink(context.Background(), userId, &dto.AddLinkRequest{
		SubjectId: subject.Id,
		Url:       "https://example.com/article",
		Title:     "Cell Structure",
		Content:   content,
	})

	assert.NoError(t, err)
	if assert.NotNil(t, res) {
		assert.Equal(t, "Cell Structure", res.Title)
		assert.Equal(t, entity.ResourceTypeLink, res.Type)
		assert.Equal(t, 3, res.ChunkCount)
	}

	assert.Equal(t, 3, embedder.calls)
	assert.Len(t, uow.embeddings.stored, 3)
	for i, emb := range uow.embeddings.stored {
		assert.Equal(t, i, emb.ChunkIndex)
		assert.NotEmpty(t, emb.EmbeddingValue)
	}

	assert.Len(t, uow.resources.created, 1)

	// Completion message went out on the internal bus.
	assert.Len(t, pub.payloads, 1)
}

func TestAddLinkUnknownSubjectReturnsNil(t *testing.T) {
	userId := uuid.New()
	svc, uow, _, _ := newResourceFixture(nil, &fakeYoutube{}, &fakeEmbedder{})

	res, err := svc.AddLink(context.Background(), userId, &dto.AddLinkRequest{
		SubjectId: uuid.New(),
		Url:       "https://example.com",
		Content:   "some text",
	})

	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, uow.resources.created)
}

func TestAddLinkEmbeddingFailureKeepsResource(t *testing.T) {
	userId := uuid.New()
	subject := testSubject(userId)
	embedder := &fakeEmbedder{failWhen: []string{"mitochondria"}}
	svc, uow, pub, _ := newResourceFixture(subject, &fakeYoutube{}, embedder)

	_, err := svc.AddLink(context.Background(), userId, &dto.AddLinkRequest{
		SubjectId: subject.Id,
		Url:       "https://example.com",
		Content:   "The mitochondria is the powerhouse of the cell.",
	})

	assert.ErrorIs(t, err, embedding.ErrEmbeddingService)
	// The row is created before indexing and survives the failure.
	assert.Len(t, uow.resources.created, 1)
	assert.Empty(t, uow.embeddings.stored)
	assert.Empty(t, pub.payloads)
}

func TestAddVideoUsesVideoTitle(t *testing.T) {
	userId := uuid.New()
	subject := testSubject(userId)
	yt := &fakeYoutube{
		videos: map[string]*youtube.VideoInfo{
			"dQw4w9WgXcQ": {
				VideoID:     "dQw4w9WgXcQ",
				Title:       "Photosynthesis Explained",
				Description: "A walkthrough of the light reactions.",
				Transcript:  "Plants convert light into chemical energy.",
			},
		},
	}
	svc, uow, _, _ := newResourceFixture(subject, yt, &fakeEmbedder{})

	res, err := svc.AddVideo(context.Background(), userId, &dto.AddVideoRequest{
		SubjectId: subject.Id,
		Url:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, res) {
		assert.Equal(t, "Photosynthesis Explained", res.Title)
		assert.Equal(t, entity.ResourceTypeVideo, res.Type)
		assert.Equal(t, 1, res.ChunkCount)
	}
	assert.Len(t, uow.resources.created, 1)
}

func TestAddPlaylistToleratesFailingVideos(t *testing.T) {
	userId := uuid.New()
	subject := testSubject(userId)

	videos := map[string]*youtube.VideoInfo{}
	videoIds := make([]string, 5)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("video%d", i+1)
		videoIds[i] = id
		// Videos 2 and 4 have no metadata and fail extraction.
		if i == 1 || i == 3 {
			continue
		}
		videos[id] = &youtube.VideoInfo{
			VideoID:    id,
			Title:      fmt.Sprintf("Lecture %d", i+1),
			Transcript: fmt.Sprintf("Transcript of lecture %d.", i+1),
		}
	}

	yt := &fakeYoutube{
		videos:   videos,
		playlist: &youtube.Playlist{Title: "Intro Course", VideoIDs: videoIds},
	}
	svc, uow, pub, _ := newResourceFixture(subject, yt, &fakeEmbedder{})

	res, err := svc.AddPlaylist(context.Background(), userId, &dto.AddPlaylistRequest{
		SubjectId: subject.Id,
		Url:       "https://www.youtube.com/playlist?list=PLtest123",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, res) {
		assert.Equal(t, "Intro Course", res.Title)
		assert.Equal(t, entity.ResourceTypePlaylist, res.Type)
		assert.Equal(t, 5, res.TotalVideos)
		assert.Equal(t, 3, res.ProcessedVideos)
		assert.Equal(t, 2, res.FailedVideos)
		assert.Equal(t, 3, res.ChunkCount)
	}

	// One resource row for the whole playlist, counters written back.
	assert.Len(t, uow.resources.created, 1)
	if assert.Len(t, uow.resources.updated, 1) {
		meta := uow.resources.updated[0].Metadata
		if assert.NotNil(t, meta) {
			assert.Equal(t, 3, meta.ProcessedVideos)
			assert.Equal(t, 2, meta.FailedVideos)
		}
	}

	// Chunks from surviving videos carry the video title prefix and
	// contiguous indexes.
	assert.Len(t, uow.embeddings.stored, 3)
	for i, emb := range uow.embeddings.stored {
		assert.Equal(t, i, emb.ChunkIndex)
		assert.Contains(t, emb.Content, "[Video: Lecture")
	}

	assert.Len(t, pub.payloads, 1)
}

func TestAddPlaylistTruncatesToVideoLimit(t *testing.T) {
	userId := uuid.New()
	subject := testSubject(userId)

	videos := map[string]*youtube.VideoInfo{}
	videoIds := make([]string, 25)
	for i := range videoIds {
		id := fmt.Sprintf("video%d", i+1)
		videoIds[i] = id
		videos[id] = &youtube.VideoInfo{
			VideoID:    id,
			Title:      fmt.Sprintf("Lecture %d", i+1),
			Transcript: "short transcript",
		}
	}

	yt := &fakeYoutube{
		videos:   videos,
		playlist: &youtube.Playlist{Title: "Long Course", VideoIDs: videoIds},
	}
	svc, _, _, _ := newResourceFixture(subject, yt, &fakeEmbedder{})

	res, err := svc.AddPlaylist(context.Background(), userId, &dto.AddPlaylistRequest{
		SubjectId: subject.Id,
		Url:       "https://www.youtube.com/playlist?list=PLlong",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, res) {
		assert.Equal(t, 20, res.TotalVideos)
		assert.Equal(t, 20, res.ProcessedVideos)
		assert.Equal(t, 0, res.FailedVideos)
	}
}

func TestDeletePDFRemovesStoredFile(t *testing.T) {
	userId := uuid.New()
	subject := testSubject(userId)
	svc, uow, _, store := newResourceFixture(subject, &fakeYoutube{}, &fakeEmbedder{})

	resource := &entity.Resource{
		Id:        uuid.New(),
		Title:     "notes.pdf",
		Type:      entity.ResourceTypePDF,
		SubjectId: subject.Id,
		UserId:    userId,
	}
	uow.resources.found = resource

	err := svc.Delete(context.Background(), userId, resource.Id)

	assert.NoError(t, err)
	assert.Equal(t, 1, uow.committed)
	if assert.Len(t, store.deletes, 1) {
		assert.Equal(t, fmt.Sprintf("%s/notes.pdf", subject.Id), store.deletes[0])
	}
}
