package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"assetbase/internal/audit"
	"assetbase/internal/auth"
)

// RecordAudit appends one audit record. Any authenticated caller may
// log; there is no permission gate. Identity, client address and tenant
// id are filled in server-side from the resolved actor.
func RecordAudit(recorder *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Action  string         `json:"action" binding:"required"`
			Payload datatypes.JSON `json:"payload"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}

		rec, err := recorder.Record(c.Request.Context(), auth.CurrentActor(c), audit.Entry{
			Action:  in.Action,
			IP:      c.ClientIP(),
			Payload: in.Payload,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

// ListAudit returns recent records, newest first, tenant-filtered for
// non-superusers.
func ListAudit(recorder *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if v := c.Query("limit"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				limit = parsed
			}
		}
		records, err := recorder.List(c.Request.Context(), auth.CurrentActor(c), limit)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": records})
	}
}
