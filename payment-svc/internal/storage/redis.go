package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"loveplanet/payment-svc/internal/domain"
)

// SessionStore keeps in-flight checkout sessions so a retried payment
// attempt reuses the live checkout page instead of minting a duplicate.
// Entries expire with the payment window.
type SessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{Client: client, TTL: ttl}
}

func (s *SessionStore) sessionKey(orderCode int64) string {
	return "payment:session:" + strconv.FormatInt(orderCode, 10)
}

func (s *SessionStore) uidKey(uid string) string {
	return "payment:uid:" + uid
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.Client.Set(ctx, s.sessionKey(sess.OrderCode), raw, s.TTL).Err(); err != nil {
		return err
	}
	if sess.UID != "" {
		return s.Client.Set(ctx, s.uidKey(sess.UID), sess.OrderCode, s.TTL).Err()
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, orderCode int64) (*domain.Session, error) {
	raw, err := s.Client.Get(ctx, s.sessionKey(orderCode)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// FindByUID returns the caller's pending session, if any. This is the
// "existing order" detection: the same customer retrying checkout gets the
// session they already opened.
func (s *SessionStore) FindByUID(ctx context.Context, uid string) (*domain.Session, error) {
	if uid == "" {
		return nil, nil
	}
	code, err := s.Client.Get(ctx, s.uidKey(uid)).Int64()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return s.Get(ctx, code)
}

func (s *SessionStore) Delete(ctx context.Context, orderCode int64, uid string) error {
	keys := []string{s.sessionKey(orderCode)}
	if uid != "" {
		keys = append(keys, s.uidKey(uid))
	}
	return s.Client.Del(ctx, keys...).Err()
}
