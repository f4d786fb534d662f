package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ledgerline/invoice-service/internal/config"
	"github.com/ledgerline/invoice-service/internal/types"
)

// CORSMiddleware allows credentialed calls from the configured origins only
func CORSMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", types.HeaderRequestID},
		ExposeHeaders:    []string{types.HeaderRequestID, types.HeaderProcessTime},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
