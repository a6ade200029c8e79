package api

import (
	"time"

	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// APIRateLimiter limits each client to 100 requests per 15 minutes on the
// AI-backed routes.
func APIRateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 15 * time.Minute,
		Limit:  100,
	}
	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}
