package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Chat rate limit: per authenticated user, 12 messages/min with a burst of
// 5. Enough for a real conversation, low enough to stop scripted spam of
// the append-only message log.

const (
	chatRPS        = 0.2 // 12/min
	chatBurst      = 5
	chatCleanupGap = 5 * time.Minute
	chatLimiterTTL = 30 * time.Minute
)

type chatLimiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// ChatRateLimiter hands out one token bucket per user and drops buckets
// that have been idle past the TTL.
type ChatRateLimiter struct {
	mu      sync.Mutex
	entries map[int]*chatLimiterEntry
	started bool
}

func NewChatRateLimiter() *ChatRateLimiter {
	return &ChatRateLimiter{entries: make(map[int]*chatLimiterEntry)}
}

func (l *ChatRateLimiter) limiterFor(userID int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.startCleanupOnce()

	e, ok := l.entries[userID]
	if !ok {
		e = &chatLimiterEntry{limiter: rate.NewLimiter(rate.Limit(chatRPS), chatBurst)}
		l.entries[userID] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func (l *ChatRateLimiter) startCleanupOnce() {
	if l.started {
		return
	}
	l.started = true
	go func() {
		for {
			time.Sleep(chatCleanupGap)
			l.mu.Lock()
			cutoff := time.Now().Add(-chatLimiterTTL)
			for id, e := range l.entries {
				if e.lastUse.Before(cutoff) {
					delete(l.entries, id)
				}
			}
			l.mu.Unlock()
		}
	}()
}

// Limit rejects requests over the per-user budget with 429. It must run
// inside RequireAuth so the user ID is already in the context.
func (l *ChatRateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value("userID").(int)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !l.limiterFor(userID).Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(int(time.Minute.Seconds())))
			http.Error(w, "too many messages, slow down", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
