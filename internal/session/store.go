package session

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "session:"
	DefaultTTL = 24 * time.Hour
)

// Store guarda sessões ativas no Redis, chaveadas pelo jti do token.
// Sessão fora do Redis é sessão morta: logout apaga a chave e o restart
// do processo não derruba ninguém.
type Store struct {
	rdb *goredis.Client
}

func NewStore(addr, password string, db int) (*Store, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	return &Store{rdb: rdb}, nil
}

// NewStoreWithClient existe para os testes injetarem um Redis próprio.
func NewStoreWithClient(rdb *goredis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return s.rdb.Set(ctx, keyPrefix+sessionID, userID, ttl).Err()
}

// UserID devolve o dono da sessão, ou "" se a sessão não existe/expirou.
func (s *Store) UserID(ctx context.Context, sessionID string) (string, error) {
	v, err := s.rdb.Get(ctx, keyPrefix+sessionID).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, keyPrefix+sessionID).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
