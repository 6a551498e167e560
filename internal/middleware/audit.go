package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/vjchen03/hsa/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUserIDKey is set by handlers once the acting user is resolved,
// so the audit row can reference them.
const CurrentUserIDKey = "currentUserID"

const maxAuditBody = 2000

// Audit appends one AuditLog row per mutating request. Reads are not
// audited; the transaction history already covers balance changes, this
// table covers who called what.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		action := c.Request.Method + " " + c.Request.URL.Path
		if len(bodyBytes) > 0 && len(bodyBytes) < maxAuditBody {
			action += " " + string(bodyBytes)
		}

		var userID *uint
		if id := c.GetUint(CurrentUserIDKey); id != 0 {
			userID = &id
		}

		entry := models.AuditLog{
			UserID:    userID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Action:    action,
			IP:        c.ClientIP(),
			RequestID: c.GetString(RequestIDKey),
		}
		// auditing must not fail the request it describes
		_ = db.Create(&entry).Error
	}
}
