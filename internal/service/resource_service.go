package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"study-tutor-be/internal/config"
	"study-tutor-be/internal/dto"
	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/pkg/logger"
	"study-tutor-be/internal/repository/specification"
	"study-tutor-be/internal/repository/unitofwork"
	"study-tutor-be/pkg/embedding"
	"study-tutor-be/pkg/events"
	pktNats "study-tutor-be/pkg/nats"
	"study-tutor-be/pkg/rag"
	"study-tutor-be/pkg/rag/extract"
	"study-tutor-be/pkg/storage"

	"github.com/google/uuid"
)

const summaryLength = 200

type IResourceService interface {
	UploadPDF(ctx context.Context, userId uuid.UUID, req *dto.UploadPDFRequest) (*dto.CreateResourceResponse, error)
	AddVideo(ctx context.Context, userId uuid.UUID, req *dto.AddVideoRequest) (*dto.CreateResourceResponse, error)
	AddPlaylist(ctx context.Context, userId uuid.UUID, req *dto.AddPlaylistRequest) (*dto.PlaylistResourceResponse, error)
	AddLink(ctx context.Context, userId uuid.UUID, req *dto.AddLinkRequest) (*dto.CreateResourceResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowResourceResponse, error)
	ListBySubject(ctx context.Context, userId uuid.UUID, subjectId uuid.UUID) ([]*dto.ShowResourceResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type resourceService struct {
	uowFactory        unitofwork.RepositoryFactory
	extractor         *extract.Extractor
	embeddingProvider embedding.EmbeddingProvider
	objectStorage     storage.ObjectStorage
	publisherService  IPublisherService
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
	ragConfig         config.RAGConfig
}

func NewResourceService(
	uowFactory unitofwork.RepositoryFactory,
	extractor *extract.Extractor,
	embeddingProvider embedding.EmbeddingProvider,
	objectStorage storage.ObjectStorage,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	ragConfig config.RAGConfig,
) IResourceService {
	return &resourceService{
		uowFactory:        uowFactory,
		extractor:         extractor,
		embeddingProvider: embeddingProvider,
		objectStorage:     objectStorage,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
		logger:            log,
		ragConfig:         ragConfig,
	}
}

// summarize keeps the leading slice of the extracted text as a preview.
func summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryLength {
		return text
	}
	return string(runes[:summaryLength]) + "..."
}

func (s *resourceService) verifySubject(ctx context.Context, uow unitofwork.UnitOfWork, userId, subjectId uuid.UUID) (*entity.Subject, error) {
	return uow.SubjectRepository().FindOne(ctx,
		specification.ByID{ID: subjectId},
		specification.ByUserID{UserID: userId},
	)
}

// embedChunks generates one embedding per chunk. A provider failure aborts
// the remaining chunks of the batch.
func (s *resourceService) embedChunks(ctx context.Context, resourceId uuid.UUID, chunks []string, startIndex int) ([]*entity.ResourceEmbedding, error) {
	embeddings := make([]*entity.ResourceEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := s.embeddingProvider.Generate(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, err
		}
		embeddings = append(embeddings, &entity.ResourceEmbedding{
			Id:             uuid.New(),
			Content:        chunk,
			EmbeddingValue: res.Embedding.Values,
			ResourceId:     resourceId,
			ChunkIndex:     startIndex + i,
			CreatedAt:      time.Now(),
		})
	}
	return embeddings, nil
}

// ingest creates the resource row first, then indexes its chunks. Once the
// row exists it is never rolled back: an embedding failure surfaces to the
// caller with the resource kept, and a chunk insert failure is only logged.
func (s *resourceService) ingest(ctx context.Context, uow unitofwork.UnitOfWork, resource *entity.Resource, text string) (int, error) {
	chunks := rag.ChunkText(text, s.ragConfig.ChunkSize)

	if err := uow.ResourceRepository().Create(ctx, resource); err != nil {
		return 0, err
	}

	embeddings, err := s.embedChunks(ctx, resource.Id, chunks, 0)
	if err != nil {
		return 0, err
	}

	if err := uow.ResourceEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
		s.logger.Warn("ResourceService", "Failed to persist chunk embeddings", map[string]interface{}{
			"resource_id": resource.Id,
			"error":       err.Error(),
		})
		return 0, nil
	}

	return len(embeddings), nil
}

// notifyIngested pushes the completion message on the internal bus and the
// external event stream. Both are auxiliary, failures are logged only.
func (s *resourceService) notifyIngested(ctx context.Context, resource *entity.Resource, chunkCount int) {
	msg := dto.ResourceIngestedMessage{
		ResourceId: resource.Id,
		SubjectId:  resource.SubjectId,
		UserId:     resource.UserId,
		Title:      resource.Title,
		Type:       resource.Type,
		ChunkCount: chunkCount,
	}
	payload, err := json.Marshal(msg)
	if err == nil {
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.logger.Warn("ResourceService", "Failed to publish ingestion message", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeResourceIngested,
			Data: map[string]interface{}{
				"resource_id": resource.Id,
				"subject_id":  resource.SubjectId,
				"user_id":     resource.UserId,
				"title":       resource.Title,
				"chunk_count": chunkCount,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ResourceService", "Failed to publish RESOURCE_INGESTED event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *resourceService) UploadPDF(ctx context.Context, userId uuid.UUID, req *dto.UploadPDFRequest) (*dto.CreateResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := s.verifySubject(ctx, uow, userId, req.SubjectId)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, nil
	}

	_, text, err := s.extractor.Extract(ctx, extract.PDFSource{Data: req.Data})
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s", req.SubjectId, req.FileName)
	url, err := s.objectStorage.Upload(ctx, key, req.Data, "application/pdf")
	if err != nil {
		return nil, err
	}

	resource := &entity.Resource{
		Id:             uuid.New(),
		Title:          req.FileName,
		Type:           entity.ResourceTypePDF,
		Url:            url,
		ContentSummary: summarize(text),
		Metadata: &entity.ResourceMetadata{
			FileSize: int64(len(req.Data)),
		},
		SubjectId: req.SubjectId,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	chunkCount, err := s.ingest(ctx, uow, resource, text)
	if err != nil {
		return nil, err
	}

	s.notifyIngested(ctx, resource, chunkCount)

	return &dto.CreateResourceResponse{
		Id:             resource.Id,
		Title:          resource.Title,
		Type:           resource.Type,
		ContentSummary: resource.ContentSummary,
		ChunkCount:     chunkCount,
	}, nil
}

func (s *resourceService) AddVideo(ctx context.Context, userId uuid.UUID, req *dto.AddVideoRequest) (*dto.CreateResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := s.verifySubject(ctx, uow, userId, req.SubjectId)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, nil
	}

	title, text, err := s.extractor.Extract(ctx, extract.VideoSource{URL: req.Url})
	if err != nil {
		return nil, err
	}

	resource := &entity.Resource{
		Id:             uuid.New(),
		Title:          title,
		Type:           entity.ResourceTypeVideo,
		Url:            req.Url,
		ContentSummary: summarize(text),
		SubjectId:      req.SubjectId,
		UserId:         userId,
		CreatedAt:      time.Now(),
	}

	chunkCount, err := s.ingest(ctx, uow, resource, text)
	if err != nil {
		return nil, err
	}

	s.notifyIngested(ctx, resource, chunkCount)

	return &dto.CreateResourceResponse{
		Id:             resource.Id,
		Title:          resource.Title,
		Type:           resource.Type,
		ContentSummary: resource.ContentSummary,
		ChunkCount:     chunkCount,
	}, nil
}

// AddPlaylist creates one resource for the whole playlist. The resource row
// is created first, then videos are processed one by one. A failing video is
// logged and skipped so the rest of the playlist still gets indexed.
func (s *resourceService) AddPlaylist(ctx context.Context, userId uuid.UUID, req *dto.AddPlaylistRequest) (*dto.PlaylistResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := s.verifySubject(ctx, uow, userId, req.SubjectId)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, nil
	}

	playlistId, playlist, err := s.extractor.ResolvePlaylist(ctx, req.Url)
	if err != nil {
		return nil, err
	}

	videoIds := playlist.VideoIDs
	if len(videoIds) > s.ragConfig.PlaylistVideoLimit {
		s.logger.Info("ResourceService", "Playlist truncated to limit", map[string]interface{}{
			"playlist_id": playlistId,
			"total":       len(videoIds),
			"limit":       s.ragConfig.PlaylistVideoLimit,
		})
		videoIds = videoIds[:s.ragConfig.PlaylistVideoLimit]
	}

	resource := &entity.Resource{
		Id:             uuid.New(),
		Title:          playlist.Title,
		Type:           entity.ResourceTypePlaylist,
		Url:            req.Url,
		ContentSummary: fmt.Sprintf("Playlist: %s\nContains %d videos.", playlist.Title, len(videoIds)),
		Metadata: &entity.ResourceMetadata{
			PlaylistId: playlistId,
			VideoIds:   videoIds,
		},
		SubjectId: req.SubjectId,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.ResourceRepository().Create(ctx, resource); err != nil {
		return nil, err
	}

	processed := 0
	failed := 0
	totalChunks := 0

	for _, videoId := range videoIds {
		videoTitle, text, err := s.extractor.ExtractVideo(ctx, videoId)
		if err != nil {
			failed++
			s.logger.Warn("ResourceService", "Skipping playlist video", map[string]interface{}{
				"video_id": videoId,
				"error":    err.Error(),
			})
			continue
		}

		chunks := rag.ChunkText(text, s.ragConfig.ChunkSize)
		prefixed := make([]string, len(chunks))
		for i, chunk := range chunks {
			prefixed[i] = fmt.Sprintf("[Video: %s] %s", videoTitle, chunk)
		}

		embeddings, err := s.embedChunks(ctx, resource.Id, prefixed, totalChunks)
		if err != nil {
			failed++
			s.logger.Warn("ResourceService", "Skipping playlist video, embedding failed", map[string]interface{}{
				"video_id": videoId,
				"error":    err.Error(),
			})
			continue
		}

		if err := uow.ResourceEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
			failed++
			s.logger.Warn("ResourceService", "Skipping playlist video, persist failed", map[string]interface{}{
				"video_id": videoId,
				"error":    err.Error(),
			})
			continue
		}

		processed++
		totalChunks += len(embeddings)
	}

	now := time.Now()
	resource.Metadata.ProcessedVideos = processed
	resource.Metadata.FailedVideos = failed
	resource.UpdatedAt = &now
	if err := uow.ResourceRepository().Update(ctx, resource); err != nil {
		return nil, err
	}

	s.notifyIngested(ctx, resource, totalChunks)

	return &dto.PlaylistResourceResponse{
		Id:              resource.Id,
		Title:           resource.Title,
		Type:            resource.Type,
		ContentSummary:  resource.ContentSummary,
		TotalVideos:     len(videoIds),
		ProcessedVideos: processed,
		FailedVideos:    failed,
		ChunkCount:      totalChunks,
	}, nil
}

func (s *resourceService) AddLink(ctx context.Context, userId uuid.UUID, req *dto.AddLinkRequest) (*dto.CreateResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := s.verifySubject(ctx, uow, userId, req.SubjectId)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, nil
	}

	_, text, err := s.extractor.Extract(ctx, extract.LinkSource{URL: req.Url, Content: req.Content})
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = req.Url
	}

	resource := &entity.Resource{
		Id:             uuid.New(),
		Title:          title,
		Type:           entity.ResourceTypeLink,
		Url:            req.Url,
		ContentSummary: summarize(text),
		SubjectId:      req.SubjectId,
		UserId:         userId,
		CreatedAt:      time.Now(),
	}

	chunkCount, err := s.ingest(ctx, uow, resource, text)
	if err != nil {
		return nil, err
	}

	s.notifyIngested(ctx, resource, chunkCount)

	return &dto.CreateResourceResponse{
		Id:             resource.Id,
		Title:          resource.Title,
		Type:           resource.Type,
		ContentSummary: resource.ContentSummary,
		ChunkCount:     chunkCount,
	}, nil
}

func (s *resourceService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resource, err := uow.ResourceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, nil
	}

	return &dto.ShowResourceResponse{
		Id:             resource.Id,
		Title:          resource.Title,
		Type:           resource.Type,
		Url:            resource.Url,
		ContentSummary: resource.ContentSummary,
		SubjectId:      resource.SubjectId,
		CreatedAt:      resource.CreatedAt,
		UpdatedAt:      resource.UpdatedAt,
	}, nil
}

func (s *resourceService) ListBySubject(ctx context.Context, userId uuid.UUID, subjectId uuid.UUID) ([]*dto.ShowResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resources, err := uow.ResourceRepository().FindAll(ctx,
		specification.BySubjectID{SubjectID: subjectId},
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowResourceResponse, len(resources))
	for i, resource := range resources {
		res[i] = &dto.ShowResourceResponse{
			Id:             resource.Id,
			Title:          resource.Title,
			Type:           resource.Type,
			Url:            resource.Url,
			ContentSummary: resource.ContentSummary,
			SubjectId:      resource.SubjectId,
			CreatedAt:      resource.CreatedAt,
			UpdatedAt:      resource.UpdatedAt,
		}
	}
	return res, nil
}

func (s *resourceService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resource, err := uow.ResourceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if resource == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ResourceEmbeddingRepository().DeleteByResourceId(ctx, id); err != nil {
		return err
	}
	if err := uow.ResourceRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if resource.Type == entity.ResourceTypePDF {
		key := fmt.Sprintf("%s/%s", resource.SubjectId, resource.Title)
		if err := s.objectStorage.Delete(ctx, key); err != nil {
			s.logger.Warn("ResourceService", "Failed to delete stored file", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeResourceDeleted,
			Data: map[string]interface{}{
				"resource_id": id,
				"user_id":     userId,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ResourceService", "Failed to publish RESOURCE_DELETED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}
