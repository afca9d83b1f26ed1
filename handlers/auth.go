package handlers

import (
	"net/http"
	"time"

	businessRepoPkg "hebelki/database/repository/business"
	staffRepoPkg "hebelki/database/repository/staff"
	"hebelki/middleware"
	"hebelki/models"
	"hebelki/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// staffTokenTTL is how long a dashboard login stays valid.
const staffTokenTTL = 72 * time.Hour

// AuthHandler owns staff/owner login for the dashboard and agent surfaces.
type AuthHandler struct {
	Businesses businessRepoPkg.BusinessRepository
	Staff      staffRepoPkg.StaffRepository
}

func NewAuthHandler(businesses businessRepoPkg.BusinessRepository, staff staffRepoPkg.StaffRepository) *AuthHandler {
	return &AuthHandler{Businesses: businesses, Staff: staff}
}

type loginRequest struct {
	Business string `json:"business" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler exchanges credentials for a tenant-bound bearer token. Every
// failure reads the same so the endpoint leaks neither slugs nor emails.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	ctx := c.Request.Context()
	biz, err := h.Businesses.GetBySlug(ctx, req.Business)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", "")
		return
	}
	if biz == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}

	member, err := h.Staff.GetByEmail(ctx, biz.ID, req.Email)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", "")
		return
	}
	if member == nil || !member.Active {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		utils.GetLogger().Warn("Failed staff login attempt",
			zap.String("businessId", biz.ID),
			zap.String("email", req.Email))
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}

	token, err := utils.GenerateToken(member.ID, biz.ID, string(member.Role), staffTokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", "")
		return
	}
	tokenHash := utils.HashToken(token)
	if err := h.Staff.SetTokenHash(ctx, biz.ID, member.ID, tokenHash); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", "")
		return
	}
	cacheKey := utils.AuthCachePrefix + biz.ID + ":" + member.ID
	_ = utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err()

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"staff": gin.H{
			"id":   member.ID,
			"name": member.Name,
			"role": member.Role,
		},
		"business": gin.H{
			"id":   biz.ID,
			"slug": biz.Slug,
			"name": biz.Name,
		},
	})
}

// LogoutHandler revokes the caller's current token. Runs behind StaffAuth.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	actor := middleware.Actor(c)
	if !actor.IsStaffTier() || actor.ActorID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	val, _ := c.Get(middleware.StaffKey)
	member, ok := val.(*models.Staff)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	ctx := c.Request.Context()
	if err := h.Staff.SetTokenHash(ctx, member.BusinessID, member.ID, ""); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", "")
		return
	}
	cacheKey := utils.AuthCachePrefix + member.BusinessID + ":" + member.ID
	_ = utils.GetAuthCacheClient().Del(ctx, cacheKey).Err()

	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
