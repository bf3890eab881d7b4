package repository

import (
	"context"
	"encoding/json"
	"inbalance_quiz_backend/internal/model"
	"inbalance_quiz_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "quiz:session:"

// SessionRepository 问卷会话的 redis 存取，TTL 到期自动清理
type SessionRepository struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{RDB: rdb, TTL: ttl}
}

func (r *SessionRepository) Save(ctx context.Context, session *model.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, sessionKeyPrefix+session.ID, data, r.TTL).Err()
}

func (r *SessionRepository) Find(ctx context.Context, id string) (*model.QuizSession, error) {
	data, err := r.RDB.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session model.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.RDB.Del(ctx, sessionKeyPrefix+id).Err()
}
