package routes

import (
	"net/http"
	"time"

	"hebelki/handlers"
	"hebelki/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Hebelki"})
	})
}

// RegisterAuthRoutes registers the staff/owner login endpoints. Login names
// the tenant in the body; logout is tenant-bound via the token itself.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)
		api.POST("/logout", middleware.StaffAuth(hb.StaffRepo, false), hb.LogoutHandler)
	}
}

// RegisterTenantRoutes registers everything scoped under a business slug.
// The reservation boundary is anonymous; the agent surface accepts an
// optional staff token that raises the actor tier for that conversation.
func RegisterTenantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/:business")
	api.Use(middleware.ResolveBusiness(hb.BusinessRepo))
	{
		api.GET("/availability", hb.AvailabilityHandler)
		api.POST("/holds", hb.CreateHoldHandler)
		api.POST("/confirm", hb.ConfirmBookingHandler)

		agentGroup := api.Group("/agent")
		agentGroup.Use(middleware.StaffAuth(hb.StaffRepo, true))
		agentGroup.POST("/chat", hb.AgentChatHandler)
		agentGroup.POST("/voice", hb.AgentVoiceHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and global
// middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterTenantRoutes(r, hb)
}
