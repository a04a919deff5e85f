package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petsit-scheduler/internal/config"
	"github.com/BruksfildServices01/petsit-scheduler/internal/handlers"
	"github.com/BruksfildServices01/petsit-scheduler/internal/middleware"
	"github.com/BruksfildServices01/petsit-scheduler/internal/realtime"
)

type Deps struct {
	Bookings *handlers.BookingHandler
	History  handlers.HistoryReader
	Hub      *realtime.Hub
	Log      *slog.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins...))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🔐 API PRIVADA
	// ======================================================
	secured := r.Group("/api/me")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		b := d.Bookings

		secured.GET("/view", b.View)
		secured.DELETE("/view", b.CloseView)

		// ------------------------------
		// BOOKINGS
		// ------------------------------
		secured.GET("/bookings", b.List)
		secured.POST("/bookings", b.Create)
		secured.POST("/bookings/validate", b.Validate)
		secured.GET("/bookings/calendar", b.Calendar)
		secured.GET("/bookings/stream", b.Stream(d.Hub, d.Log))

		secured.GET("/bookings/:id", b.Detail)
		secured.POST("/bookings/:id/edit", b.OpenEdit)
		secured.PATCH("/bookings/:id", b.Edit)
		secured.PATCH("/bookings/:id/status", b.ChangeStatus)
		secured.DELETE("/bookings/:id", b.Delete)
		secured.GET("/bookings/:id/days", b.Days)
		if d.History != nil {
			secured.GET("/bookings/:id/history", b.History(d.History))
		}

		// ------------------------------
		// REVIEWS
		// ------------------------------
		secured.GET("/bookings/:id/review", b.ReviewAction)
		secured.PUT("/bookings/:id/review", b.SubmitReview)
	}
}
