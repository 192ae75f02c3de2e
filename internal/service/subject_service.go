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

type ISubjectService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSubjectRequest) (*dto.CreateSubjectResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowSubjectResponse, error)
	ListByTerm(ctx context.Context, userId uuid.UUID, termId uuid.UUID) ([]*dto.ShowSubjectResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSubjectRequest) (*dto.UpdateSubjectResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type subjectService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSubjectService(uowFactory unitofwork.RepositoryFactory) ISubjectService {
	return &subjectService{
		uowFactory: uowFactory,
	}
}

func (s *subjectService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSubjectRequest) (*dto.CreateSubjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The parent term must belong to the caller
	term, err := uow.TermRepository().FindOne(ctx,
		specification.ByID{ID: req.TermId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if term == nil {
		return nil, nil
	}

	subject := entity.Subject{
		Id:        uuid.New(),
		Title:     req.Title,
		Color:     req.Color,
		TermId:    req.TermId,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.SubjectRepository().Create(ctx, &subject); err != nil {
		return nil, err
	}

	return &dto.CreateSubjectResponse{
		Id: subject.Id,
	}, nil
}

func (s *subjectService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowSubjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subject, err := uow.SubjectRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, nil
	}

	count, err := uow.ResourceRepository().Count(ctx,
		specification.BySubjectID{SubjectID: subject.Id},
	)
	if err != nil {
		return nil, err
	}

	return &dto.ShowSubjectResponse{
		Id:            subject.Id,
		Title:         subject.Title,
		Color:         subject.Color,
		TermId:        subject.TermId,
		ResourceCount: count,
		CreatedAt:     subject.CreatedAt,
		UpdatedAt:     subject.UpdatedAt,
	}, nil
}

func (s *subjectService) ListByTerm(ctx context.Context, userId uuid.UUID, termId uuid.UUID) ([]*dto.ShowSubjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subjects, err := uow.SubjectRepository().FindAll(ctx,
		specification.ByTermID{TermID: termId},
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowSubjectResponse, len(subjects))
	for i, subject := range subjects {
		count, err := uow.ResourceRepository().Count(ctx,
			specification.BySubjectID{SubjectID: subject.Id},
		)
		if err != nil {
			return nil, err
		}
		res[i] = &dto.ShowSubjectResponse{
			Id:            subject.Id,
			Title:         subject.Title,
			Color:         subject.Color,
			TermId:        subject.TermId,
			ResourceCount: count,
			CreatedAt:     subject.CreatedAt,
			UpdatedAt:     subject.UpdatedAt,
		}
	}
	return res, nil
}

func (s *subjectService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSubjectRequest) (*dto.UpdateSubjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := uow.SubjectRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, nil
	}

	now := time.Now()
	subject.Title = req.Title
	subject.Color = req.Color
	subject.UpdatedAt = &now

	if err := uow.SubjectRepository().Update(ctx, subject); err != nil {
		return nil, err
	}

	return &dto.UpdateSubjectResponse{
		Id: subject.Id,
	}, nil
}

func (s *subjectService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := uow.SubjectRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if subject == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ResourceEmbeddingRepository().DeleteBySubjectId(ctx, id); err != nil {
		return err
	}
	if err := uow.ResourceRepository().DeleteBySubjectId(ctx, id); err != nil {
		return err
	}
	if err := uow.NoteRepository().DeleteBySubjectId(ctx, id); err != nil {
		return err
	}
	if err := uow.SubjectRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
