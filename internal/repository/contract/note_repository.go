package contract

import (
	"context"

	"notes-be/internal/entity"
	"notes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	// Delete removes the note permanently. Returns apperror.ErrNoteNotFound
	// when no row matched the id.
	Delete(ctx context.Context, id uuid.UUID) error
	// FindOne returns (nil, nil) when no note matches the specifications.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
