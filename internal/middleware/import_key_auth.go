package middleware

import (
	"net/http"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/utils"
	"github.com/gin-gonic/gin"
)

// ImportKeyHeader carries the shared secret of the import webhook.
const ImportKeyHeader = "x-api-key"

// ImportKeyAuth checks the x-api-key header of POST requests against a bcrypt
// hash. With an empty hash the endpoint stays open. Other methods pass through
// so the handler can answer them with 405.
func ImportKeyAuth(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if !utils.CheckImportKey(c.GetHeader(ImportKeyHeader), keyHash) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Import request rejected: bad api key")
			appErr := apperrors.NewUnauthorizedError("Invalid or missing API key")
			c.AbortWithStatusJSON(appErr.Code, appErr)
			return
		}
		c.Next()
	}
}
