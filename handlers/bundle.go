package handlers

import (
	businessRepoPkg "hebelki/database/repository/business"
	staffRepoPkg "hebelki/database/repository/staff"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every endpoint handler into one struct that route
// registration receives. The repositories ride along for the middleware that
// resolves tenants and authenticates staff tokens.
type HandlerBundle struct {
	BusinessRepo businessRepoPkg.BusinessRepository
	StaffRepo    staffRepoPkg.StaffRepository

	// Staff auth endpoints.
	LoginHandler  gin.HandlerFunc
	LogoutHandler gin.HandlerFunc

	// Reservation endpoints.
	AvailabilityHandler   gin.HandlerFunc
	CreateHoldHandler     gin.HandlerFunc
	ConfirmBookingHandler gin.HandlerFunc

	// Agent endpoints.
	AgentChatHandler  gin.HandlerFunc
	AgentVoiceHandler gin.HandlerFunc
}
