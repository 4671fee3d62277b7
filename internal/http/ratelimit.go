package http

import (
	"sync"
	"time"
)

// rateLimiter is a per-client token bucket: refill tokens per second up to
// burst. Stale clients are swept by a background goroutine.
type rateLimiter struct {
	mu           sync.Mutex
	rps          float64
	burst        float64
	clients      map[string]*clientBucket
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientBucket struct {
	tokens   float64
	lastSeen time.Time
}

func newRateLimiter(rps, burst int) *rateLimiter {
	rl := &rateLimiter{
		rps:         float64(rps),
		burst:       float64(burst),
		clients:     make(map[string]*clientBucket),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientBucket{tokens: rl.burst - 1, lastSeen: now}
		return true
	}

	client.tokens += now.Sub(client.lastSeen).Seconds() * rl.rps
	if client.tokens > rl.burst {
		client.tokens = rl.burst
	}
	client.lastSeen = now

	if client.tokens < 1 {
		return false
	}
	client.tokens--
	return true
}

// startCleanup runs periodic cleanup to remove stale client entries
func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// stop gracefully shuts down the rate limiter cleanup goroutine
func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}
