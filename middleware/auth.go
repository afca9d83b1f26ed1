package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	staffRepo "hebelki/database/repository/staff"
	"hebelki/models"
	"hebelki/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Context keys set by StaffAuth.
const (
	ActorKey        = "actor"
	CapabilitiesKey = "capabilities"
	StaffKey        = "staff"
)

// StaffAuth authenticates a staff/owner bearer token and injects the
// ActorContext for the request. With optional=true a missing Authorization
// header falls through as a customer-tier actor (the public agent surface);
// a header that is present but invalid is always rejected.
//
// The actor context built here is the only trust input downstream code sees.
// Nothing in the request body can raise it.
func StaffAuth(repo staffRepo.StaffRepository, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if optional {
				c.Set(ActorKey, models.ActorContext{Type: models.ActorCustomer})
				c.Next()
				return
			}
			abortUnauthorized(c)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := utils.ExtractStaffClaims(tokenString)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		// Tokens are tenant-bound: a staff token never crosses businesses.
		biz := currentBusiness(c)
		if biz != nil && biz.ID != claims.BusinessID {
			abortUnauthorized(c)
			return
		}

		member, err := authenticateStaff(c.Request.Context(), repo, claims, tokenString)
		if err != nil || member == nil || !member.Active {
			abortUnauthorized(c)
			return
		}

		actorType := models.ActorStaff
		if member.Role == models.RoleOwner {
			actorType = models.ActorOwner
		}
		c.Set(ActorKey, models.ActorContext{Type: actorType, ActorID: member.ID})
		if caps := member.Capabilities(); caps != nil {
			c.Set(CapabilitiesKey, caps)
		}
		c.Set(StaffKey, member)
		c.Next()
	}
}

// authenticateStaff verifies the token hash against the auth cache, falling
// back to the staff document when the cache is cold or unavailable.
func authenticateStaff(ctx context.Context, repo staffRepo.StaffRepository, claims *utils.StaffClaims, tokenString string) (*models.Staff, error) {
	computedHash := utils.HashToken(tokenString)
	cacheKey := utils.AuthCachePrefix + claims.BusinessID + ":" + claims.StaffID

	authCache := utils.GetAuthCacheClient()
	if authCache != nil {
		cachedHash, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedHash != computedHash {
				return nil, nil
			}
			_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
			return repo.GetByID(ctx, claims.BusinessID, claims.StaffID)
		}
		if err != redis.Nil {
			log.Printf("WARNING: auth cache lookup failed: %v, falling back to DB", err)
		}
	}

	member, err := repo.GetByID(ctx, claims.BusinessID, claims.StaffID)
	if err != nil || member == nil {
		return nil, err
	}
	if member.TokenHash == "" || member.TokenHash != computedHash {
		return nil, nil
	}
	if authCache != nil {
		_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
	}
	return member, nil
}

func currentBusiness(c *gin.Context) *models.Business {
	val, exists := c.Get(BusinessKey)
	if !exists {
		return nil
	}
	biz, _ := val.(*models.Business)
	return biz
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
}

// Actor pulls the ActorContext set by StaffAuth, defaulting to customer tier
// when the middleware never ran (anonymous tenant routes).
func Actor(c *gin.Context) models.ActorContext {
	val, exists := c.Get(ActorKey)
	if !exists {
		return models.ActorContext{Type: models.ActorCustomer}
	}
	actor, ok := val.(models.ActorContext)
	if !ok {
		return models.ActorContext{Type: models.ActorCustomer}
	}
	return actor
}

// Capabilities pulls the capability whitelist set by StaffAuth, or nil when
// the member runs on the tier default.
func Capabilities(c *gin.Context) *models.MemberCapabilities {
	val, exists := c.Get(CapabilitiesKey)
	if !exists {
		return nil
	}
	caps, _ := val.(*models.MemberCapabilities)
	return caps
}
