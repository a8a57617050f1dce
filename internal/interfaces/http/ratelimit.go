package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

// RateLimitConfig límite por ventana con ráfaga.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// ipLimiters un token bucket por IP; se limpian los inactivos cada 5 minutos.
type ipLimiters struct {
	limiters    sync.Map // map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	mu          sync.Mutex
	lastCleanup time.Time
}

func (l *ipLimiters) get(key string) *rate.Limiter {
	if lim, ok := l.limiters.Load(key); ok {
		return lim.(*rate.Limiter)
	}
	actual, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))
	l.maybeCleanup()
	return actual.(*rate.Limiter)
}

func (l *ipLimiters) maybeCleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if time.Since(l.lastCleanup) < 5*time.Minute {
		return
	}
	l.lastCleanup = time.Now()
	l.limiters.Range(func(key, value any) bool {
		// bucket lleno = sin uso reciente
		if value.(*rate.Limiter).Tokens() >= float64(l.burst) {
			l.limiters.Delete(key)
		}
		return true
	})
}

// RateLimitByIP responde 429 con Retry-After al superar el límite.
func RateLimitByIP(cfg RateLimitConfig, log *logger.Logger) fiber.Handler {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerWindow
	}
	l := &ipLimiters{
		rate:        rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:       cfg.Burst,
		lastCleanup: time.Now(),
	}
	return func(c *fiber.Ctx) error {
		key := c.IP()
		lim := l.get(key)
		if lim.Allow() {
			return c.Next()
		}
		res := lim.Reserve()
		retryAfter := max(int(res.Delay().Seconds()), 1)
		res.Cancel()

		log.Warn().
			Str("ip", key).
			Str("path", c.Path()).
			Int("retry_after", retryAfter).
			Msg("límite de intentos excedido")

		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Code:    "RATE_LIMITED",
			Message: "Muitas tentativas. Tente novamente mais tarde.",
		})
	}
}
