package repository

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/infra/database/models"
)

// TokenRepository issues and resolves API tokens. Only the SHA-256 hash is
// stored; the opaque token is shown to the caller exactly once.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (r *TokenRepository) Issue(ctx context.Context, id domain.PersonID) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := "cdt_" + hex.EncodeToString(raw)

	pid, _ := uuid.Parse(id.String())
	record := models.APIToken{
		TokenHash: hashToken(token),
		PersonID:  pid,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", err
	}
	return token, nil
}

// Resolve maps a presented token to its owner. Revoked and unknown tokens
// both come back as ErrNotFound.
func (r *TokenRepository) Resolve(ctx context.Context, token string) (domain.PersonID, error) {
	var record models.APIToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND revoked_at IS NULL", hashToken(token)).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PersonID{}, domain.NotFoundError{Resource: "token"}
		}
		return domain.PersonID{}, err
	}
	return domain.ParsePersonID(record.PersonID.String())
}
