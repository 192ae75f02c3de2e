package service

import (
	"context"
	"time"

	"study-tutor-be/internal/dto"
	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/repository/specification"
	"study-tutor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type INoteService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveNoteRequest) (*dto.SaveNoteResponse, error)
	ShowBySubject(ctx context.Context, userId uuid.UUID, subjectId uuid.UUID) (*dto.ShowNoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, subjectId uuid.UUID) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory) INoteService {
	return &noteService{
		uowFactory: uowFactory,
	}
}

// Save upserts the single note a subject holds.
func (s *noteService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveNoteRequest) (*dto.SaveNoteResponse, error) {
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

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.BySubjectID{SubjectID: req.SubjectId},
	)
	if err != nil {
		return nil, err
	}

	if note == nil {
		note = &entity.Note{
			Id:        uuid.New(),
			Content:   req.Content,
			SubjectId: req.SubjectId,
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		if err := uow.NoteRepository().Create(ctx, note); err != nil {
			return nil, err
		}
	} else {
		now := time.Now()
		note.Content = req.Content
		note.UpdatedAt = &now
		if err := uow.NoteRepository().Update(ctx, note); err != nil {
			return nil, err
		}
	}

	return &dto.SaveNoteResponse{
		Id: note.Id,
	}, nil
}

// ShowBySubject returns the subject's note, or an empty note when none has
// been saved yet. The client treats both the same way.
func (s *noteService) ShowBySubject(ctx context.Context, userId uuid.UUID, subjectId uuid.UUID) (*dto.ShowNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.BySubjectID{SubjectID: subjectId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return &dto.ShowNoteResponse{
			SubjectId: subjectId,
			Content:   "",
		}, nil
	}

	return &dto.ShowNoteResponse{
		Id:        note.Id,
		SubjectId: note.SubjectId,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}, nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, subjectId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.BySubjectID{SubjectID: subjectId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return nil
	}

	return uow.NoteRepository().Delete(ctx, note.Id)
}
