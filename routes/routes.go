package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"estate-backend/controllers"
	"estate-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the public site endpoints and the JWT-guarded admin
// dashboard endpoints.
func SetupRouter(
	bc *controllers.BookingController,
	ac *controllers.AppointmentController,
	cc *controllers.ContactController,
	pc *controllers.PropertyController,
	anc *controllers.AnnouncementController,
	ec *controllers.EventsController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestLogger())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ---- public site ----
		properties := api.Group("/properties")
		{
			properties.GET("", pc.GetProperties)
			properties.GET("/:id", pc.GetProperty)
			properties.GET("/:id/availability", bc.GetAvailability)
		}

		api.GET("/announcements", anc.GetAnnouncements)
		api.GET("/settings/company", controllers.GetCompanySettings)

		api.POST("/bookings", bc.SubmitBooking)
		api.POST("/appointments", ac.SubmitAppointment)
		api.POST("/contacts", cc.SubmitContact)

		// push change notifications (subscribe-then-refetch)
		api.GET("/events", ec.Stream)

		api.POST("/auth/login", controllers.Login)

		// ---- admin dashboard ----
		admin := api.Group("/admin", middleware.RequireAdmin())
		{
			admin.POST("/auth/password", controllers.ChangePassword)

			bookings := admin.Group("/bookings")
			{
				bookings.GET("", bc.GetBookings)
				bookings.GET("/:id", bc.GetBookingDetails)
				bookings.POST("/:id/approve", bc.ApproveBooking)
				bookings.POST("/:id/reject", bc.RejectBooking)
				bookings.DELETE("/:id", bc.DeleteBooking)
				bookings.GET("/:id/emails", bc.GetEmailLogs)
			}

			admin.GET("/appointments", ac.GetAppointments)
			admin.DELETE("/appointments/:id", ac.DeleteAppointment)

			admin.GET("/contacts", cc.GetContacts)
			admin.DELETE("/contacts/:id", cc.DeleteContact)

			adminProps := admin.Group("/properties")
			{
				adminProps.POST("", pc.CreateProperty)
				adminProps.PUT("/:id", pc.UpdateProperty)
				adminProps.PATCH("/:id", pc.UpdateProperty)
				adminProps.DELETE("/:id", pc.DeleteProperty)
				adminProps.GET("/:id/stock", bc.ListUnitStock)
				adminProps.PUT("/:id/stock", bc.SetUnitStock)
			}

			adminAnns := admin.Group("/announcements")
			{
				adminAnns.GET("", anc.GetAllAnnouncements)
				adminAnns.POST("", anc.CreateAnnouncement)
				adminAnns.PUT("/:id", anc.UpdateAnnouncement)
				adminAnns.DELETE("/:id", anc.DeleteAnnouncement)
			}

			admin.PUT("/settings/company", controllers.UpdateCompanySettings)
		}
	}

	return r
}
