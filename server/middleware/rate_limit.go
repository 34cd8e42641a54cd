package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// GinRateLimitMiddleware ограничивает частоту запросов на тяжелых маршрутах
// (импорт предложений, генерация отчетов). Один общий лимитер на маршрут:
// источник нагрузки — автоматизированные выгрузки из 1С, а не отдельные
// пользователи.
func GinRateLimitMiddleware(perSecond float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   true,
				"message": "Слишком много запросов, повторите позже",
			})
			return
		}
		c.Next()
	}
}
