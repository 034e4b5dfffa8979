package advice

import (
	"container/list"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"nutritrack/internal/model"
)

// Entry is one remembered piece of advice.
type Entry struct {
	Type       model.AdviceType `json:"type"`
	Title      string           `json:"title"`
	RecipeName string           `json:"recipe_name,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// EntryFor summarizes advice for the history.
func EntryFor(a model.Advice, at time.Time) Entry {
	e := Entry{Type: a.Type, Title: a.Title, CreatedAt: at}
	if a.Recipe != nil {
		e.RecipeName = a.Recipe.Name
	}
	return e
}

// History remembers the most recent advice per user, newest first.
type History interface {
	Recent(ctx context.Context, userID string) ([]Entry, error)
	Remember(ctx context.Context, userID string, e Entry) error
}

const (
	DefaultHistorySize = 5
	DefaultMaxUsers    = 10000
)

// MemoryHistory is a bounded in-process History. It keeps at most perUser
// entries for at most maxUsers users; the least recently updated user is
// evicted first. It is safe for concurrent use.
type MemoryHistory struct {
	mu       sync.Mutex
	perUser  int
	maxUsers int
	order    *list.List // front is most recently updated
	users    map[string]*list.Element
}

type userEntries struct {
	userID  string
	entries []Entry
}

func NewMemoryHistory(perUser, maxUsers int) *MemoryHistory {
	if perUser <= 0 {
		perUser = DefaultHistorySize
	}
	if maxUsers <= 0 {
		maxUsers = DefaultMaxUsers
	}
	return &MemoryHistory{
		perUser:  perUser,
		maxUsers: maxUsers,
		order:    list.New(),
		users:    make(map[string]*list.Element),
	}
}

func (h *MemoryHistory) Recent(_ context.Context, userID string) ([]Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	el, ok := h.users[userID]
	if !ok {
		return nil, nil
	}
	src := el.Value.(*userEntries).entries
	out := make([]Entry, len(src))
	copy(out, src)
	return out, nil
}

func (h *MemoryHistory) Remember(_ context.Context, userID string, e Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if el, ok := h.users[userID]; ok {
		ue := el.Value.(*userEntries)
		ue.entries = prepend(ue.entries, e, h.perUser)
		h.order.MoveToFront(el)
		return nil
	}

	for h.order.Len() >= h.maxUsers {
		oldest := h.order.Back()
		h.order.Remove(oldest)
		delete(h.users, oldest.Value.(*userEntries).userID)
	}
	h.users[userID] = h.order.PushFront(&userEntries{userID: userID, entries: []Entry{e}})
	return nil
}

// Len reports the number of tracked users.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.order.Len()
}

func prepend(entries []Entry, e Entry, limit int) []Entry {
	out := make([]Entry, 0, min(len(entries)+1, limit))
	out = append(out, e)
	for _, old := range entries {
		if len(out) == limit {
			break
		}
		out = append(out, old)
	}
	return out
}

// RedisHistory stores each user's history in a capped Redis list, so it
// survives restarts and is shared between replicas.
type RedisHistory struct {
	rdb     redis.UniversalClient
	perUser int
	ttl     time.Duration
}

const (
	redisKeyPrefix = "advice:recent:"
	redisTTL       = 30 * 24 * time.Hour
)

func NewRedisHistory(rdb redis.UniversalClient, perUser int) *RedisHistory {
	if perUser <= 0 {
		perUser = DefaultHistorySize
	}
	return &RedisHistory{rdb: rdb, perUser: perUser, ttl: redisTTL}
}

func redisKey(userID string) string { return redisKeyPrefix + userID }

func (h *RedisHistory) Recent(ctx context.Context, userID string) ([]Entry, error) {
	raw, err := h.rdb.LRange(ctx, redisKey(userID), 0, int64(h.perUser-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("advice history: %w", err)
	}
	out := make([]Entry, 0, len(raw))
	for _, r := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			slog.WarnContext(ctx, "skipping malformed advice history entry", "component", "advice", "user_id", userID, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (h *RedisHistory) Remember(ctx context.Context, userID string, e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("advice history: encode: %w", err)
	}
	key := redisKey(userID)
	_, err = h.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, key, b)
		p.LTrim(ctx, key, 0, int64(h.perUser-1))
		p.Expire(ctx, key, h.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("advice history: %w", err)
	}
	return nil
}
