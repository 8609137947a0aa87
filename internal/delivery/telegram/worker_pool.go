package telegram

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/yourusername/pc-build-generator/pkg/logger"
	"golang.org/x/time/rate"
)

// botRequest represents a command to be processed
type botRequest struct {
	ctx     context.Context
	userID  int64
	chatID  int64
	command string
	args    string
}

// workerPool manages parallel processing of build requests
type workerPool struct {
	requestQueue chan *botRequest
	workerCount  int
	handler      *BotHandler
	wg           sync.WaitGroup
	closeOnce    sync.Once

	// Rate limiting per user
	rateLimiter   map[int64]*userRateLimit
	rateLimiterMu sync.Mutex
}

// userRateLimit token bucket per user
type userRateLimit struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	maxRequestsPerSecond   = 3
	rateLimitBurst         = 3
	requestQueueSize       = 100
	defaultWorkerCount     = 8
	requestTimeout         = 45 * time.Second
	rateLimiterCleanupTime = 5 * time.Minute  // How often to clean up rate limiters
	rateLimiterMaxIdleTime = 10 * time.Minute // Max idle time before removing rate limiter
	maxRateLimitersInCache = 10000            // Max number of rate limiters to keep in memory
)

// newWorkerPool creates a new worker pool
func newWorkerPool(handler *BotHandler, workerCount int) *workerPool {
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}

	return &workerPool{
		requestQueue: make(chan *botRequest, requestQueueSize),
		workerCount:  workerCount,
		handler:      handler,
		rateLimiter:  make(map[int64]*userRateLimit),
	}
}

// start starts all workers
func (wp *workerPool) start(ctx context.Context) {
	logger.InfoLogger.Printf("Starting %d workers for build requests", wp.workerCount)

	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}

	// Cleanup old rate limit entries periodically
	go wp.cleanupRateLimits(ctx)
}

// worker processes requests from the queue
func (wp *workerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-ctx.Done():
			logger.InfoLogger.Printf("Worker %d shutting down", id)
			return
		case req, ok := <-wp.requestQueue:
			if !ok {
				logger.InfoLogger.Printf("Worker %d shutting down (queue closed)", id)
				return
			}
			if req == nil {
				continue
			}

			if !wp.checkRateLimit(req.userID) {
				wp.handler.sendMessage(req.chatID, "⚠️ Juda ko'p so'rov. Iltimos, biroz kutib turing.")
				wp.handler.endProcessing(req.userID)
				continue
			}

			wp.processWithTimeout(req)
		}
	}
}

// processWithTimeout processes a request with context timeout
func (wp *workerPool) processWithTimeout(req *botRequest) {
	parent := req.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, requestTimeout)
	defer cancel()

	defer wp.handler.endProcessing(req.userID)

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorLogger.Printf("Panic in request processing for user %d: %v", req.userID, r)
			wp.handler.sendMessage(req.chatID, "⚠️ Ichki xatolik yuz berdi. Iltimos, qayta urinib ko'ring.")
		}
	}()

	wp.handler.sendTyping(req.chatID)
	wp.handler.process(ctx, req)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		logger.InfoLogger.Printf("request timeout for user %d after %v", req.userID, requestTimeout)
	}
}

// checkRateLimit checks if user is within rate limit
func (wp *workerPool) checkRateLimit(userID int64) bool {
	wp.rateLimiterMu.Lock()
	defer wp.rateLimiterMu.Unlock()

	entry, exists := wp.rateLimiter[userID]
	if !exists {
		entry = &userRateLimit{limiter: rate.NewLimiter(rate.Limit(maxRequestsPerSecond), rateLimitBurst)}
		wp.rateLimiter[userID] = entry
	}
	entry.lastSeen = time.Now()

	if !entry.limiter.Allow() {
		logger.WarnLogger.Printf("Rate limit exceeded for user %d", userID)
		return false
	}
	return true
}

// cleanupRateLimits removes old rate limit entries
func (wp *workerPool) cleanupRateLimits(ctx context.Context) {
	ticker := time.NewTicker(rateLimiterCleanupTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			wp.pruneRateLimiters(now)
		}
	}
}

// pruneRateLimiters idle limiterlarni o'chiradi, kesh hali katta bo'lsa eng eskilarini
func (wp *workerPool) pruneRateLimiters(now time.Time) int {
	wp.rateLimiterMu.Lock()
	defer wp.rateLimiterMu.Unlock()

	before := len(wp.rateLimiter)
	for userID, entry := range wp.rateLimiter {
		if now.Sub(entry.lastSeen) > rateLimiterMaxIdleTime {
			delete(wp.rateLimiter, userID)
		}
	}

	if excess := len(wp.rateLimiter) - maxRateLimitersInCache; excess > 0 {
		type userTime struct {
			userID   int64
			lastSeen time.Time
		}
		users := make([]userTime, 0, len(wp.rateLimiter))
		for userID, entry := range wp.rateLimiter {
			users = append(users, userTime{userID: userID, lastSeen: entry.lastSeen})
		}
		sort.Slice(users, func(i, j int) bool { return users[i].lastSeen.Before(users[j].lastSeen) })
		for _, u := range users[:excess] {
			delete(wp.rateLimiter, u.userID)
		}
	}

	removed := before - len(wp.rateLimiter)
	if removed > 0 {
		logger.InfoLogger.Printf("Cleaned up %d inactive rate limiters (total: %d -> %d)", removed, before, len(wp.rateLimiter))
	}
	return removed
}

// submit submits a request to the worker pool
func (wp *workerPool) submit(req *botRequest) bool {
	select {
	case wp.requestQueue <- req:
		return true
	default:
		// Queue is full
		logger.WarnLogger.Printf("Worker pool queue is full (%d/%d), rejecting request from user %d", len(wp.requestQueue), requestQueueSize, req.userID)
		wp.handler.sendMessage(req.chatID, "⚠️ Bot juda band. Iltimos, bir oz kutib turing.")
		wp.handler.endProcessing(req.userID)
		return false
	}
}

// shutdown gracefully shuts down the worker pool
func (wp *workerPool) shutdown() {
	wp.closeOnce.Do(func() {
		logger.InfoLogger.Printf("Shutting down worker pool, %d requests in queue", len(wp.requestQueue))
		close(wp.requestQueue)
		wp.wg.Wait()
		logger.InfoLogger.Println("Worker pool shut down successfully")
	})
}
