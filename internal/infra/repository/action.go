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

type ActionRepository struct {
	db *gorm.DB
}

func NewActionRepository(db *gorm.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

func actionToModel(action *domain.Action) models.Action {
	id, _ := uuid.Parse(action.ID().String())
	personID, _ := uuid.Parse(action.PersonID().String())
	activityID, _ := uuid.Parse(action.ActivityID().String())
	return models.Action{
		ID:            id,
		PersonID:      personID,
		ActivityID:    activityID,
		Proof:         action.Proof(),
		Status:        string(action.Status()),
		SubmittedAt:   action.SubmittedAt(),
		VerifiedAt:    action.VerifiedAt(),
		ChainActionID: action.ChainActionID(),
	}
}

func actionFromModel(m models.Action) (*domain.Action, error) {
	id, err := domain.ParseActionID(m.ID.String())
	if err != nil {
		return nil, err
	}
	personID, err := domain.ParsePersonID(m.PersonID.String())
	if err != nil {
		return nil, err
	}
	activityID, err := domain.ParseActivityID(m.ActivityID.String())
	if err != nil {
		return nil, err
	}
	return domain.RestoreAction(id, personID, activityID, m.Proof, domain.ActionStatus(m.Status), m.SubmittedAt, m.VerifiedAt, m.ChainActionID), nil
}

func (r *ActionRepository) Save(ctx context.Context, action *domain.Action) error {
	record := actionToModel(action)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"proof", "status", "verified_at", "chain_action_id"}),
	}).Create(&record).Error
}

func (r *ActionRepository) FindByID(ctx context.Context, id domain.ActionID) (*domain.Action, error) {
	var record models.Action
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "action"}
		}
		return nil, err
	}
	return actionFromModel(record)
}

func (r *ActionRepository) FindByPersonID(ctx context.Context, id domain.PersonID) ([]*domain.Action, error) {
	var records []models.Action
	err := r.db.WithContext(ctx).
		Where("person_id = ?", id.String()).
		Order("submitted_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return actionsFromModels(records)
}

func (r *ActionRepository) FindByActivityID(ctx context.Context, id domain.ActivityID) ([]*domain.Action, error) {
	var records []models.Action
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", id.String()).
		Order("submitted_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return actionsFromModels(records)
}

func (r *ActionRepository) FindVerifiedByPersonID(ctx context.Context, id domain.PersonID) ([]*domain.Action, error) {
	var records []models.Action
	err := r.db.WithContext(ctx).
		Where("person_id = ? AND status = ?", id.String(), string(domain.StatusValidated)).
		Order("submitted_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return actionsFromModels(records)
}

func (r *ActionRepository) FindPending(ctx context.Context) ([]*domain.Action, error) {
	var records []models.Action
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusSubmitted)).
		Order("submitted_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return actionsFromModels(records)
}

func actionsFromModels(records []models.Action) ([]*domain.Action, error) {
	actions := make([]*domain.Action, 0, len(records))
	for _, record := range records {
		action, err := actionFromModel(record)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, nil
}
