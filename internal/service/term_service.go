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

type ITermService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTermRequest) (*dto.CreateTermResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowTermResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowTermResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTermRequest) (*dto.UpdateTermResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type termService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTermService(uowFactory unitofwork.RepositoryFactory) ITermService {
	return &termService{
		uowFactory: uowFactory,
	}
}

func (s *termService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTermRequest) (*dto.CreateTermResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	term := entity.Term{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		UserId:      userId,
		CreatedAt:   time.Now(),
	}

	if err := uow.TermRepository().Create(ctx, &term); err != nil {
		return nil, err
	}

	return &dto.CreateTermResponse{
		Id: term.Id,
	}, nil
}

func (s *termService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowTermResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	term, err := uow.TermRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if term == nil {
		return nil, nil
	}

	return &dto.ShowTermResponse{
		Id:          term.Id,
		Title:       term.Title,
		Description: term.Description,
		CreatedAt:   term.CreatedAt,
		UpdatedAt:   term.UpdatedAt,
	}, nil
}

func (s *termService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowTermResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	terms, err := uow.TermRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowTermResponse, len(terms))
	for i, term := range terms {
		res[i] = &dto.ShowTermResponse{
			Id:          term.Id,
			Title:       term.Title,
			Description: term.Description,
			CreatedAt:   term.CreatedAt,
			UpdatedAt:   term.UpdatedAt,
		}
	}
	return res, nil
}

func (s *termService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTermRequest) (*dto.UpdateTermResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	term, err := uow.TermRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if term == nil {
		return nil, nil
	}

	now := time.Now()
	term.Title = req.Title
	term.Description = req.Description
	term.UpdatedAt = &now

	if err := uow.TermRepository().Update(ctx, term); err != nil {
		return nil, err
	}

	return &dto.UpdateTermResponse{
		Id: term.Id,
	}, nil
}

func (s *termService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	term, err := uow.TermRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if term == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	subjects, err := uow.SubjectRepository().FindAll(ctx, specification.ByTermID{TermID: id})
	if err != nil {
		return err
	}

	for _, subject := range subjects {
		if err := uow.ResourceEmbeddingRepository().DeleteBySubjectId(ctx, subject.Id); err != nil {
			return err
		}
		if err := uow.ResourceRepository().DeleteBySubjectId(ctx, subject.Id); err != nil {
			return err
		}
		if err := uow.NoteRepository().DeleteBySubjectId(ctx, subject.Id); err != nil {
			return err
		}
	}

	if err := uow.SubjectRepository().DeleteByTermId(ctx, id); err != nil {
		return err
	}

	if err := uow.TermRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
