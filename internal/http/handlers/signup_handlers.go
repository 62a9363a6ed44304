package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/http/middleware"
)

// SignupHandlers drives the step wizard over HTTP. The current step is
// never stored: every view is re-derived from the server-owned onboarding
// state.
type SignupHandlers struct {
	flow    domain.SignupFlowService
	authSvc domain.AuthService
}

// NewSignupHandlers creates new signup wizard handlers.
func NewSignupHandlers(flow domain.SignupFlowService, authSvc domain.AuthService) *SignupHandlers {
	return &SignupHandlers{flow: flow, authSvc: authSvc}
}

// StepRequest is a wizard step submission.
type StepRequest struct {
	Step  domain.SignupStep `json:"step" binding:"required"`
	Input domain.StepInput  `json:"input"`
	Adult bool              `json:"adult"`
}

// GetStep handles GET /signup/step: which screen comes next, per server truth.
func (h *SignupHandlers) GetStep(c *gin.Context) {
	step, err := h.flow.Advance(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		writeStepError(c, err)
		return
	}
	adult := c.Query("adult") != "false"
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"step":     step,
			"progress": h.flow.Progress(step, adult),
		},
	})
}

// SubmitStep handles POST /signup/step.
func (h *SignupHandlers) SubmitStep(c *gin.Context) {
	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := middleware.SessionID(c)
	result, err := h.flow.Submit(c.Request.Context(), sessionID, req.Step, req.Input)
	if err != nil {
		writeStepError(c, err)
		return
	}

	payload := gin.H{
		"next":  result.Next,
		"close": result.CloseWizard,
	}

	// Credential capture hands over to the post-auth flow, which owns the
	// landing decision for the fresh account.
	if result.CloseWizard && req.Step == domain.StepEmailPassword {
		route, flowErr := h.authSvc.PostAuthFlow(c.Request.Context(), sessionID, true)
		if flowErr == domain.ErrFlowInFlight {
			route = domain.RouteDashboard
		} else if flowErr != nil {
			route = domain.RouteDashboard
		}
		payload["route"] = route
	} else if result.Next != "" {
		payload["progress"] = h.flow.Progress(result.Next, req.Adult)
	}

	c.JSON(http.StatusOK, gin.H{"data": payload})
}

// BackRequest asks for the previous screen.
type BackRequest struct {
	Step domain.SignupStep `json:"step" binding:"required"`
}

// Back handles POST /signup/back: pure view change, no server calls, no
// undo of submitted state.
func (h *SignupHandlers) Back(c *gin.Context) {
	var req BackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prev, ok := domain.PreviousStep(req.Step)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No previous step"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"step": prev}})
}

// OnboardingView handles the GET /onboarding/* routes the post-auth flow
// redirects to. The server still decides the actual step: deep-linking a
// screen the user has outgrown just reports the real one.
func (h *SignupHandlers) OnboardingView(requested domain.SignupStep) gin.HandlerFunc {
	return func(c *gin.Context) {
		step, err := h.flow.Advance(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			writeStepError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"requested": requested,
				"step":      step,
			},
		})
	}
}

// writeStepError renders a wizard failure: inline copy plus the step the
// wizard should now show (credential capture when the session died).
func writeStepError(c *gin.Context, err error) {
	if se, ok := err.(*domain.StepError); ok {
		status := domain.StatusOf(se.Cause)
		if status == 0 {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": se.Copy, "step": se.Step})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
}
