package middleware

import (
	"context"
	"time"

	"github.com/farellandr/dealhub/internal/deals"
	"github.com/farellandr/dealhub/internal/repository"
	"github.com/gin-gonic/gin"
)

// TagInvalidator drops cached tag names after staff edits.
type TagInvalidator interface {
	Invalidate(ctx context.Context, dealIDs ...uint) error
}

type AuthSettings struct {
	Secret   string
	TokenTTL time.Duration
}

type MediaSettings struct {
	UploadDir    string
	BaseURL      string
	MaxSizeBytes int64
}

// Services bundles what handlers need for a request.
type Services struct {
	Deals    *deals.Service
	DealRepo *repository.DealRepository
	TagRepo  *repository.TagRepository
	Media    *repository.MediaRepository
	Accounts *repository.AccountRepository
	TagCache TagInvalidator
	Auth     AuthSettings
	MediaCfg MediaSettings
}

func ServicesMiddleware(services *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("services", services)
		c.Next()
	}
}

func GetServices(c *gin.Context) *Services {
	services, exists := c.Get("services")
	if !exists {
		return nil
	}
	return services.(*Services)
}
