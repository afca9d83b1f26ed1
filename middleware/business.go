package middleware

import (
	"net/http"

	businessRepo "hebelki/database/repository/business"
	"hebelki/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BusinessKey is the gin context key the resolved tenant lives under.
const BusinessKey = "business"

// ResolveBusiness turns the :business path segment (the tenant slug) into a
// loaded Business document. Every tenant-scoped route sits behind this; an
// unknown slug is a plain 404 with no detail.
func ResolveBusiness(repo businessRepo.BusinessRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("business")
		if slug == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		biz, err := repo.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			utils.GetLogger().Error("Failed to resolve business slug",
				zap.String("slug", slug), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if biz == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		c.Set(BusinessKey, biz)
		c.Next()
	}
}
