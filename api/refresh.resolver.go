package api

import (
	"portfoliopulse/internal/logger"

	"github.com/gin-gonic/gin"
)

// refresh bypasses the result cache and runs a full pass now.
func (m ApiHandler) refresh(c *gin.Context) {
	ctx := logger.ToContext(c.Request.Context(), m.Log)

	result, err := m.AnalysisService.Refresh(ctx)
	if err != nil {
		m.Log.Errorw("refresh request failed", "error", err)
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, toDashboardResponse(result))
}
