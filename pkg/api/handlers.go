package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/codegend/pkg/models"
)

// generateHandler handles POST /agent/generate. mode=sync (default) drives
// the request through the processor inline; mode=async submits it to the
// scheduler and returns immediately (spec §6).
func (s *Server) generateHandler(c *gin.Context) {
	var body generateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	req, err := body.toGenerateRequest(requestUserID(c))
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	if c.Query("mode") == "async" {
		s.submitAsync(c, req)
		return
	}
	s.runSync(c, req)
}

func (s *Server) runSync(c *gin.Context, req models.GenerateRequest) {
	result, err := s.processor.Process(c.Request.Context(), req)
	if err != nil {
		_, message := mapEngineError(err)
		c.JSON(http.StatusOK, newSyncErrorResponse(req.Product, message))
		return
	}
	c.JSON(http.StatusOK, newSyncSuccessResponse(req.Product, result))
}

func (s *Server) submitAsync(c *gin.Context, req models.GenerateRequest) {
	jobID, err := s.scheduler.Submit(req)
	if err != nil {
		status, message := mapEngineError(err)
		writeError(c, status, message)
		return
	}
	c.JSON(http.StatusOK, asyncSubmitResponse{
		JobID:     jobID,
		Status:    "queued",
		StatusURL: "/agent/jobs/" + jobID,
		Message:   "generation request queued",
	})
}

// jobStatusHandler handles GET /agent/jobs/{id}.
func (s *Server) jobStatusHandler(c *gin.Context) {
	snap, err := s.scheduler.Status(c.Param("id"))
	if err != nil {
		status, message := mapEngineError(err)
		writeError(c, status, message)
		return
	}
	c.JSON(http.StatusOK, newJobStatusResponse(snap))
}

// cancelJobHandler handles POST /agent/jobs/{id}/cancel.
func (s *Server) cancelJobHandler(c *gin.Context) {
	if err := s.scheduler.Cancel(c.Param("id")); err != nil {
		status, message := mapEngineError(err)
		writeError(c, status, message)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancel requested"})
}

// requestUserID extracts the caller identity for audit purposes. No auth
// layer is specified for this on-premise deployment; a future reverse
// proxy can populate this header without any handler change.
func requestUserID(c *gin.Context) string {
	return c.GetHeader("X-User-Id")
}
