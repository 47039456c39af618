package service

import (
	"context"
	"sort"
	"testing"

	"notes-be/internal/dto"
	"notes-be/internal/entity"
	"notes-be/internal/pkg/apperror"
	"notes-be/internal/repository/contract"
	"notes-be/internal/repository/specification"
	"notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryNoteRepository is an in-memory stand-in for the GORM repository. It
// understands the specifications the note service actually uses.
type memoryNoteRepository struct {
	notes map[uuid.UUID]*entity.Note
}

func newMemoryNoteRepository() *memoryNoteRepository {
	return &memoryNoteRepository{notes: make(map[uuid.UUID]*entity.Note)}
}

func (r *memoryNoteRepository) Create(_ context.Context, note *entity.Note) error {
	clone := *note
	r.notes[note.Id] = &clone
	return nil
}

func (r *memoryNoteRepository) Update(_ context.Context, note *entity.Note) error {
	clone := *note
	r.notes[note.Id] = &clone
	return nil
}

func (r *memoryNoteRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.notes[id]; !ok {
		return apperror.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *memoryNoteRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Note, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if note, found := r.notes[byID.ID]; found {
				clone := *note
				return &clone, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *memoryNoteRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	all := make([]*entity.Note, 0, len(r.notes))
	for _, note := range r.notes {
		clone := *note
		all = append(all, &clone)
	}

	limit, offset := len(all), 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.InsertionOrder:
			sort.Slice(all, func(i, j int) bool {
				if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
					return all[i].CreatedAt.Before(all[j].CreatedAt)
				}
				return all[i].Id.String() < all[j].Id.String()
			})
		case specification.Pagination:
			limit, offset = s.Limit, s.Offset
		}
	}

	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryNoteRepository) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.notes)), nil
}

type memoryUnitOfWork struct {
	repo contract.NoteRepository
}

func (u *memoryUnitOfWork) Begin(context.Context) error { return nil }
func (u *memoryUnitOfWork) Commit() error               { return nil }
func (u *memoryUnitOfWork) Rollback() error             { return nil }

func (u *memoryUnitOfWork) NoteRepository() contract.NoteRepository { return u.repo }

type memoryFactory struct {
	repo contract.NoteRepository
}

func (f *memoryFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &memoryUnitOfWork{repo: f.repo}
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}

func (noopLogger) Sync() error { return nil }

func newTestService() (INoteService, *memoryNoteRepository) {
	repo := newMemoryNoteRepository()
	svc := NewNoteService(&memoryFactory{repo: repo}, noopLogger{}, ListLimits{Default: 50, Max: 100})
	return svc, repo
}

func strPtr(s string) *string {
	return &s
}

func TestCreateThenShowRoundtrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.Id)
	assert.Equal(t, "Groceries", created.Title)
	assert.Equal(t, "milk", created.Content)
	assert.True(t, created.UpdatedAt.Equal(created.CreatedAt))

	shown, err := svc.Show(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created.Id, shown.Id)
	assert.Equal(t, "Groceries", shown.Title)
	assert.Equal(t, "milk", shown.Content)
}

func TestCreateTrimsTitle(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Title: "  Groceries  ", Content: ""})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", created.Title)
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	svc, repo := newTestService()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Title: title})
		assert.True(t, apperror.IsValidation(err), "title %q should fail validation", title)
	}

	// Nothing may be persisted on a failed create
	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateRejectsOverlongTitle(t *testing.T) {
	svc, _ := newTestService()

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Create(context.Background(), &dto.CreateNoteRequest{Title: string(long)})
	assert.True(t, apperror.IsValidation(err))
}

func TestShowUnknownIdReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Show(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateReplacesAllMutableFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "Old", Content: "old body"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.Id, &dto.UpdateNoteRequest{Title: "New", Content: ""})
	require.NoError(t, err)
	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "", updated.Content, "full update replaces content even with empty string")
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt), "created_at is immutable")
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt), "updated_at is monotonic non-decreasing")
}

func TestUpdateUnknownIdReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateNoteRequest{Title: "x"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateRejectsEmptyTitle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "Keep", Content: "body"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.Id, &dto.UpdateNoteRequest{Title: "   "})
	assert.True(t, apperror.IsValidation(err))

	// Record is untouched after the failed update
	shown, err := svc.Show(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Keep", shown.Title)
	assert.Equal(t, "body", shown.Content)
}

func TestPatchContentLeavesTitleUnchanged(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)

	patched, err := svc.Patch(ctx, created.Id, &dto.PatchNoteRequest{Content: strPtr("milk, eggs")})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", patched.Title)
	assert.Equal(t, "milk, eggs", patched.Content)
	assert.True(t, patched.CreatedAt.Equal(created.CreatedAt))
	assert.False(t, patched.UpdatedAt.Before(created.UpdatedAt))
}

func TestPatchTitleOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)

	patched, err := svc.Patch(ctx, created.Id, &dto.PatchNoteRequest{Title: strPtr("Shopping")})
	require.NoError(t, err)
	assert.Equal(t, "Shopping", patched.Title)
	assert.Equal(t, "milk", patched.Content)
}

func TestPatchExplicitEmptyContentClears(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)

	patched, err := svc.Patch(ctx, created.Id, &dto.PatchNoteRequest{Content: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", patched.Content)
}

func TestPatchSuppliedEmptyTitleFails(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)

	_, err = svc.Patch(ctx, created.Id, &dto.PatchNoteRequest{Title: strPtr("  ")})
	assert.True(t, apperror.IsValidation(err))
}

func TestPatchEmptyFieldSetIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)

	patched, err := svc.Patch(ctx, created.Id, &dto.PatchNoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", patched.Title)
	assert.Equal(t, "milk", patched.Content)
	assert.True(t, patched.UpdatedAt.Equal(created.UpdatedAt), "empty patch does not refresh updated_at")
}

func TestPatchUnknownIdReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Patch(context.Background(), uuid.New(), &dto.PatchNoteRequest{Content: strPtr("x")})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteThenShowReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "Temp", Content: ""})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.Id))

	_, err = svc.Show(ctx, created.Id)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteUnknownIdReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Delete(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestListReturnsInsertionOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	titles := []string{"A", "B", "C"}
	for _, title := range titles {
		_, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: title})
		require.NoError(t, err)
	}

	listed, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, title := range titles {
		assert.Equal(t, title, listed[i].Title)
	}
}

func TestListEmptyStoreReturnsEmptySlice(t *testing.T) {
	svc, _ := newTestService()

	listed, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, listed)
	assert.Empty(t, listed)
}

func TestListClampsSkipAndLimit(t *testing.T) {
	repo := newMemoryNoteRepository()
	svc := NewNoteService(&memoryFactory{repo: repo}, noopLogger{}, ListLimits{Default: 2, Max: 3})
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C", "D", "E"} {
		_, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: title})
		require.NoError(t, err)
	}

	// default limit applies when none given
	listed, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	// limit above max is clamped
	listed, err = svc.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	// negative skip is treated as zero
	listed, err = svc.List(ctx, -5, 3)
	require.NoError(t, err)
	assert.Equal(t, "A", listed[0].Title)

	// skip offsets into the ordered sequence
	listed, err = svc.List(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "C", listed[0].Title)
}

func TestGroceriesScenario(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateNoteRequest{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)
	assert.True(t, created.UpdatedAt.Equal(created.CreatedAt))

	patched, err := svc.Patch(ctx, created.Id, &dto.PatchNoteRequest{Content: strPtr("milk, eggs")})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", patched.Title)
	assert.Equal(t, "milk, eggs", patched.Content)
	assert.False(t, patched.UpdatedAt.Before(patched.CreatedAt))

	require.NoError(t, svc.Delete(ctx, created.Id))

	_, err = svc.Show(ctx, created.Id)
	assert.True(t, apperror.IsNotFound(err))
}
