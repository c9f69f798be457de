package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/infra/database/models"
	"github.com/mirukibs/contradots/internal/usecase"
)

const leaderboardKey = "contradots:leaderboard"

// LeaderboardRepository keeps the reputation ranking in a redis sorted
// set. Members are stored as "<personId>|<name>" so reads need no
// database roundtrip. An empty set is rebuilt from postgres, which covers
// both cold starts and redis flushes.
type LeaderboardRepository struct {
	rdb *redis.Client
	db  *gorm.DB
}

func NewLeaderboardRepository(rdb *redis.Client, db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{rdb: rdb, db: db}
}

func (r *LeaderboardRepository) UpdateScore(ctx context.Context, personID domain.PersonID, name string, score int) error {
	member := fmt.Sprintf("%s|%s", personID.String(), name)

	// Drop any previous member for this person before re-adding, the
	// display name may have changed.
	iter := r.rdb.ZScan(ctx, leaderboardKey, 0, personID.String()+"|*", 0).Iterator()
	for iter.Next(ctx) {
		stale := iter.Val()
		if strings.HasPrefix(stale, personID.String()+"|") && stale != member {
			if err := r.rdb.ZRem(ctx, leaderboardKey, stale).Err(); err != nil {
				return err
			}
		}
		// ZScan yields member and score alternately; skip the score.
		if !iter.Next(ctx) {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}

	return r.rdb.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(score),
		Member: member,
	}).Err()
}

func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]usecase.LeaderboardEntry, error) {
	total, err := r.rdb.ZCard(ctx, leaderboardKey).Result()
	if err != nil {
		return nil, err
	}
	if total == 0 {
		if err := r.rebuild(ctx); err != nil {
			return nil, err
		}
	}

	rows, err := r.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]usecase.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		member, ok := row.Member.(string)
		if !ok {
			continue
		}
		personID, name, found := strings.Cut(member, "|")
		if !found {
			continue
		}
		entries = append(entries, usecase.LeaderboardEntry{
			Rank:       i + 1,
			PersonID:   personID,
			Name:       name,
			Reputation: int(row.Score),
		})
	}
	return entries, nil
}

// rebuild repopulates the sorted set from the persons table.
func (r *LeaderboardRepository) rebuild(ctx context.Context) error {
	var persons []models.Person
	err := r.db.WithContext(ctx).
		Where("reputation > 0").
		Find(&persons).Error
	if err != nil {
		return err
	}

	for _, person := range persons {
		member := fmt.Sprintf("%s|%s", person.ID.String(), person.Name)
		if err := r.rdb.ZAdd(ctx, leaderboardKey, redis.Z{
			Score:  float64(person.Reputation),
			Member: member,
		}).Err(); err != nil {
			return err
		}
	}
	return nil
}
