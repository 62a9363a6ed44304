package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// GuardianHandlers serves the approval link a parent receives by SMS. The
// link carries its own approval id; no session or login is required.
type GuardianHandlers struct {
	api domain.BackendClient
}

// NewGuardianHandlers creates new guardian handlers.
func NewGuardianHandlers(api domain.BackendClient) *GuardianHandlers {
	return &GuardianHandlers{api: api}
}

// Approve handles POST /guardian/approve/:approvalId.
func (h *GuardianHandlers) Approve(c *gin.Context) {
	approvalID := c.Param("approvalId")
	if approvalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing approval id"})
		return
	}

	if err := h.api.ApproveGuardian(c.Request.Context(), approvalID); err != nil {
		switch domain.StatusOf(err) {
		case http.StatusNotFound, http.StatusGone:
			c.JSON(http.StatusNotFound, gin.H{"error": "This approval link is invalid or has expired"})
		case http.StatusConflict:
			c.JSON(http.StatusConflict, gin.H{"error": "This request was already handled"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Approval failed, please try again"})
		}
		return
	}

	log.Printf("%s: approval_id=%s timestamp=%s",
		domain.GuardianApproveEvent, approvalID, time.Now().UTC().Format(time.RFC3339))

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Approved. The student can now continue."}})
}
