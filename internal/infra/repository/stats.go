package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/infra/database/models"
	"github.com/mirukibs/contradots/internal/usecase"
)

const statsCacheTTL = 60 // seconds

// ActivityStatsRepository backs the submission-volume projection with
// postgres and fronts reads with memcached. Writes invalidate the cached
// entry instead of updating it.
type ActivityStatsRepository struct {
	db *gorm.DB
	mc *memcache.Client
}

func NewActivityStatsRepository(db *gorm.DB, mc *memcache.Client) *ActivityStatsRepository {
	return &ActivityStatsRepository{db: db, mc: mc}
}

func statsCacheKey(id domain.ActivityID) string {
	return "contradots:stats:" + id.String()
}

func (r *ActivityStatsRepository) RecordSubmission(ctx context.Context, activityID domain.ActivityID, personID domain.PersonID) error {
	aid, _ := uuid.Parse(activityID.String())
	pid, _ := uuid.Parse(personID.String())

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "activity_id"}, {Name: "person_id"}},
		DoUpdates: clause.Assignments(map[string]any{"submissions": gorm.Expr("activity_stats.submissions + 1")}),
	}).Create(&models.ActivityStat{
		ActivityID:  aid,
		PersonID:    pid,
		Submissions: 1,
	}).Error
	if err != nil {
		return err
	}

	if r.mc != nil {
		if err := r.mc.Delete(statsCacheKey(activityID)); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
			slog.WarnContext(ctx, "stats cache invalidation failed",
				slog.String("activityId", activityID.String()),
				slog.String("error", err.Error()),
				slog.String("module", "repository"),
			)
		}
	}
	return nil
}

func (r *ActivityStatsRepository) Stats(ctx context.Context, id domain.ActivityID) (usecase.ActivityStats, error) {
	if r.mc != nil {
		if item, err := r.mc.Get(statsCacheKey(id)); err == nil {
			var cached usecase.ActivityStats
			if err := json.Unmarshal(item.Value, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var stats usecase.ActivityStats
	err := r.db.WithContext(ctx).
		Model(&models.ActivityStat{}).
		Select("COALESCE(SUM(submissions), 0) AS submissions, COUNT(*) AS participants").
		Where("activity_id = ?", id.String()).
		Scan(&stats).Error
	if err != nil {
		return usecase.ActivityStats{}, err
	}

	if r.mc != nil {
		if body, err := json.Marshal(stats); err == nil {
			r.mc.Set(&memcache.Item{
				Key:        statsCacheKey(id),
				Value:      body,
				Expiration: statsCacheTTL,
			})
		}
	}
	return stats, nil
}
