package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/mirukibs/contradots/internal/domain"
)

// LeaderboardChannel carries reputation change notifications to realtime
// subscribers.
const LeaderboardChannel = "contradots:signal:leaderboard"

type reputationChanged struct {
	PersonID   string `json:"personId"`
	Reputation int    `json:"reputationScore"`
}

// SignalService fans leaderboard changes out over redis pub/sub.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) NotifyReputationChanged(ctx context.Context, personID domain.PersonID, score int) error {

	jsonstr, err := json.Marshal(reputationChanged{
		PersonID:   personID.String(),
		Reputation: score,
	})
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, LeaderboardChannel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Subscribe opens a pub/sub subscription on the leaderboard channel. The
// caller owns the returned subscription and must close it.
func (s *SignalService) Subscribe(ctx context.Context) *redis.PubSub {
	return s.rdb.Subscribe(ctx, LeaderboardChannel)
}
