package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/infra/database/models"
)

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

func personFromModel(m models.Person) (*domain.Person, error) {
	id, err := domain.ParsePersonID(m.ID.String())
	if err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(m.Role)
	if err != nil {
		return nil, err
	}
	return domain.RestorePerson(id, m.Name, m.Email, role, m.Reputation, m.Version), nil
}

// Save inserts new persons and updates existing ones with an optimistic
// version check. A stale version yields domain.ConflictError so the caller
// can reload and retry.
func (r *PersonRepository) Save(ctx context.Context, person *domain.Person) error {
	id, _ := uuid.Parse(person.ID().String())

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Person
		err := tx.Where("id = ?", id).Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record := models.Person{
				ID:         id,
				Name:       person.Name(),
				Email:      person.Email(),
				Role:       string(person.Role()),
				Reputation: person.Reputation(),
				Version:    person.Version(),
			}
			if err := tx.Create(&record).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return domain.StateError{Msg: "email is already registered"}
				}
				return err
			}
			return nil
		}
		if err != nil {
			return err
		}

		result := tx.Model(&models.Person{}).
			Where("id = ? AND version = ?", id, person.Version()).
			Updates(map[string]any{
				"name":       person.Name(),
				"role":       string(person.Role()),
				"reputation": person.Reputation(),
				"version":    person.Version() + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ConflictError{Resource: "person"}
		}
		return nil
	})
}

func (r *PersonRepository) FindByID(ctx context.Context, id domain.PersonID) (*domain.Person, error) {
	var record models.Person
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "person"}
		}
		return nil, err
	}
	return personFromModel(record)
}

func (r *PersonRepository) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	var record models.Person
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "person"}
		}
		return nil, err
	}
	return personFromModel(record)
}
