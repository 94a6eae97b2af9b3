package echomw

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// how long a client's limiter survives without a request
const clientIdleTimeout = time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// basic per-IP rate limiter; the report download is the only guarded route
var (
	clients     = make(map[string]*clientLimiter)
	mu          sync.Mutex
	janitorOnce sync.Once
	rateLimit   int // Number of requests per second
	burst       int // Burst size (how many requests are allowed instantly)
)

func UpdateRateLimits(rateLimitInput, burstInput int) {
	mu.Lock()
	defer mu.Unlock()
	rateLimit = rateLimitInput
	burst = burstInput
}

// getLimiter returns the rate limiter for the given IP address.
func getLimiter(ip string) *rate.Limiter {
	janitorOnce.Do(startJanitor)

	mu.Lock()
	defer mu.Unlock()

	client, exists := clients[ip]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rateLimit), burst)}
		clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter
}

// startJanitor sweeps idle clients so the map does not grow unbounded.
func startJanitor() {
	go func() {
		for {
			time.Sleep(clientIdleTimeout)
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > clientIdleTimeout {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()
}

// Custom rate limiting middleware based on client IP address
func RateLimiterMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP() // Get the client's IP address
		limiter := getLimiter(ip)

		// Check if the request is allowed by the rate limiter
		if !limiter.Allow() {
			c.Response().Header().Set("Retry-After", "1")
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		}
		return next(c)
	}
}
