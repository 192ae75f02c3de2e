package unitofwork

import (
	"context"

	"study-tutor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TermRepository() contract.TermRepository
	SubjectRepository() contract.SubjectRepository
	ResourceRepository() contract.ResourceRepository
	ResourceEmbeddingRepository() contract.ResourceEmbeddingRepository
	NoteRepository() contract.NoteRepository
}
