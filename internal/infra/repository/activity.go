package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/infra/database/models"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func activityToModel(activity *domain.Activity) models.Activity {
	id, _ := uuid.Parse(activity.ID().String())
	creatorID, _ := uuid.Parse(activity.CreatorID().String())
	return models.Activity{
		ID:          id,
		Title:       activity.Title(),
		Description: activity.Description(),
		CreatorID:   creatorID,
		Points:      activity.Points(),
		IsActive:    activity.IsActive(),
		CreatedAt:   activity.CreatedAt(),
	}
}

func activityFromModel(m models.Activity) (*domain.Activity, error) {
	id, err := domain.ParseActivityID(m.ID.String())
	if err != nil {
		return nil, err
	}
	creatorID, err := domain.ParsePersonID(m.CreatorID.String())
	if err != nil {
		return nil, err
	}
	return domain.RestoreActivity(id, m.Title, m.Description, creatorID, m.Points, m.CreatedAt, m.IsActive), nil
}

func (r *ActivityRepository) Save(ctx context.Context, activity *domain.Activity) error {
	record := activityToModel(activity)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "points", "is_active"}),
	}).Create(&record).Error
}

func (r *ActivityRepository) FindByID(ctx context.Context, id domain.ActivityID) (*domain.Activity, error) {
	var record models.Activity
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "activity"}
		}
		return nil, err
	}
	return activityFromModel(record)
}

func (r *ActivityRepository) FindByCreatorID(ctx context.Context, id domain.PersonID) ([]*domain.Activity, error) {
	var records []models.Activity
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", id.String()).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return activitiesFromModels(records)
}

func (r *ActivityRepository) FindAllActive(ctx context.Context) ([]*domain.Activity, error) {
	var records []models.Activity
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return activitiesFromModels(records)
}

func activitiesFromModels(records []models.Activity) ([]*domain.Activity, error) {
	activities := make([]*domain.Activity, 0, len(records))
	for _, record := range records {
		activity, err := activityFromModel(record)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, nil
}
