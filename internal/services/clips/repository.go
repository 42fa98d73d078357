package clips

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/internal/services/lifecycle"
	"gorm.io/gorm"
)

// Repository is the record store for clips
type Repository interface {
	Insert(ctx context.Context, clip *models.Clip) error
	UpdateState(ctx context.Context, id string, from, to models.ClipState, fields map[string]any) error
	FindByID(ctx context.Context, id string) (*models.Clip, error)
	FindByOwner(ctx context.Context, ownerID string, limit int) ([]*models.Clip, error)
	FindStale(ctx context.Context, states []models.ClipState, olderThan time.Time, limit int) ([]*models.Clip, error)
	CountByState(ctx context.Context) (map[models.ClipState]int64, error)
	CountOwners(ctx context.Context) (int64, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

var _ lifecycle.StateStore = (*repository)(nil)

// NewRepository creates a gorm backed clip repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, clip *models.Clip) error {
	if err := r.db.WithContext(ctx).Create(clip).Error; err != nil {
		return fmt.Errorf("failed to create clip record: %w", err)
	}
	return nil
}

// UpdateState writes fields and the new state only while the stored state
// still equals from
func (r *repository) UpdateState(ctx context.Context, id string, from, to models.ClipState, fields map[string]any) error {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["state"] = to

	result := r.db.WithContext(ctx).
		Model(&models.Clip{}).
		Where("id = ? AND state = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update clip state: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Clip{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check clip: %w", err)
	}
	if count == 0 {
		return ErrClipNotFound
	}
	return fmt.Errorf("%w: clip %s is no longer %s", lifecycle.ErrStateConflict, id, from)
}

func (r *repository) FindByID(ctx context.Context, id string) (*models.Clip, error) {
	var clip models.Clip
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&clip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClipNotFound
		}
		return nil, fmt.Errorf("failed to get clip: %w", err)
	}
	return &clip, nil
}

// FindByOwner returns the owner's clips, newest first
func (r *repository) FindByOwner(ctx context.Context, ownerID string, limit int) ([]*models.Clip, error) {
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	clips := make([]*models.Clip, 0)
	if err := query.Find(&clips).Error; err != nil {
		return nil, fmt.Errorf("failed to list clips: %w", err)
	}
	return clips, nil
}

// FindStale returns clips in one of states last updated before olderThan
func (r *repository) FindStale(ctx context.Context, states []models.ClipState, olderThan time.Time, limit int) ([]*models.Clip, error) {
	query := r.db.WithContext(ctx).
		Where("state IN ? AND updated_at < ?", states, olderThan).
		Order("updated_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var clips []*models.Clip
	if err := query.Find(&clips).Error; err != nil {
		return nil, fmt.Errorf("failed to find stale clips: %w", err)
	}
	return clips, nil
}

func (r *repository) CountByState(ctx context.Context) (map[models.ClipState]int64, error) {
	var rows []struct {
		State models.ClipState
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Clip{}).
		Select("state, COUNT(*) AS count").
		Group("state").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count clips: %w", err)
	}

	counts := make(map[models.ClipState]int64, len(rows))
	for _, row := range rows {
		counts[row.State] = row.Count
	}
	return counts, nil
}

func (r *repository) CountOwners(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Clip{}).Distinct("owner_id").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count owners: %w", err)
	}
	return count, nil
}

func (r *repository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Clip{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count clips: %w", err)
	}
	return count, nil
}
