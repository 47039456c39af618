package service

import (
	"context"
	"strings"
	"time"

	"notes-be/internal/dto"
	"notes-be/internal/entity"
	"notes-be/internal/pkg/apperror"
	"notes-be/internal/pkg/logger"
	"notes-be/internal/repository/specification"
	"notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const maxTitleLength = 255

type INoteService interface {
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error)
	List(ctx context.Context, skip, limit int) ([]*dto.NoteResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Patch(ctx context.Context, id uuid.UUID, req *dto.PatchNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ListLimits struct {
	Default int
	Max     int
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	limits     ListLimits
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger, limits ListLimits) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		logger:     log,
		limits:     limits,
	}
}

// normalizeTitle trims the title and enforces the entity rules: non-empty
// after trimming, at most 255 characters.
func normalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", apperror.NewValidation("title must not be empty")
	}
	if len(trimmed) > maxTitleLength {
		return "", apperror.NewValidation("title must be at most %d characters", maxTitleLength)
	}
	return trimmed, nil
}

func toResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// touch returns the refreshed updated_at timestamp. The floor keeps
// updated_at monotonic non-decreasing even if the clock steps backwards.
func touch(floor time.Time) time.Time {
	now := time.Now().UTC()
	if now.Before(floor) {
		return floor
	}
	return now
}

func (s *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	title, err := normalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := entity.Note{
		Id:        uuid.New(),
		Title:     title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		s.logger.Error("note_service", "failed to create note", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.logger.Info("note_service", "note created", map[string]interface{}{"note_id": note.Id})
	return toResponse(&note), nil
}

func (s *noteService) Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.ErrNoteNotFound
	}
	return toResponse(note), nil
}

func (s *noteService) List(ctx context.Context, skip, limit int) ([]*dto.NoteResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = s.limits.Default
	}
	if limit > s.limits.Max {
		limit = s.limits.Max
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.InsertionOrder{},
		specification.Pagination{Limit: limit, Offset: skip},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, len(notes))
	for i, note := range notes {
		res[i] = toResponse(note)
	}
	return res, nil
}

func (s *noteService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	title, err := normalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.ErrNoteNotFound
	}

	note.Title = title
	note.Content = req.Content
	note.UpdatedAt = touch(note.UpdatedAt)

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		s.logger.Error("note_service", "failed to update note", map[string]interface{}{"note_id": id, "error": err.Error()})
		return nil, err
	}

	return toResponse(note), nil
}

func (s *noteService) Patch(ctx context.Context, id uuid.UUID, req *dto.PatchNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.ErrNoteNotFound
	}

	// Empty field set: nothing to merge, the record is left untouched and
	// updated_at keeps its current value.
	if req.Title == nil && req.Content == nil {
		return toResponse(note), nil
	}

	if req.Title != nil {
		title, err := normalizeTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		note.Title = title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	note.UpdatedAt = touch(note.UpdatedAt)

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		s.logger.Error("note_service", "failed to patch note", map[string]interface{}{"note_id": id, "error": err.Error()})
		return nil, err
	}

	return toResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		if !apperror.IsNotFound(err) {
			s.logger.Error("note_service", "failed to delete note", map[string]interface{}{"note_id": id, "error": err.Error()})
		}
		return err
	}

	s.logger.Info("note_service", "note deleted", map[string]interface{}{"note_id": id})
	return nil
}
