package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/http/middleware"
)

// DropHandlers serves the drop lifecycle: scratch pre-fill data captured
// on the marketing funnel, the read-only lookups, and create/publish.
type DropHandlers struct {
	api     domain.BackendClient
	scratch domain.DropDataStore
}

// NewDropHandlers creates new drop handlers.
func NewDropHandlers(api domain.BackendClient, scratch domain.DropDataStore) *DropHandlers {
	return &DropHandlers{api: api, scratch: scratch}
}

// GetDropData handles GET /dropdata.
func (h *DropHandlers) GetDropData(c *gin.Context) {
	data, err := h.scratch.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// PutDropData handles PUT /dropdata: stores the pre-fill bag and marks the
// drop-creation flow.
func (h *DropHandlers) PutDropData(c *gin.Context) {
	var data domain.DropFormData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := middleware.SessionID(c)
	_ = h.scratch.Set(c.Request.Context(), sessionID, &data)
	_ = h.scratch.MarkFlow(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Saved"}})
}

// DeleteDropData handles DELETE /dropdata: clears data and flow flag.
func (h *DropHandlers) DeleteDropData(c *gin.Context) {
	_ = h.scratch.Clear(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Cleared"}})
}

func (h *DropHandlers) lookupHandler(fetch func(c *gin.Context) ([]domain.LookupItem, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := fetch(c)
		if err != nil {
			writeRemoteError(c, err, "Lookup failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": items})
	}
}

// Templates handles GET /lookup/templates.
func (h *DropHandlers) Templates() gin.HandlerFunc {
	return h.lookupHandler(func(c *gin.Context) ([]domain.LookupItem, error) {
		return h.api.GetDropTemplates(c.Request.Context())
	})
}

// Videos handles GET /lookup/videos.
func (h *DropHandlers) Videos() gin.HandlerFunc {
	return h.lookupHandler(func(c *gin.Context) ([]domain.LookupItem, error) {
		return h.api.GetDropVideos(c.Request.Context())
	})
}

// Topics handles GET /lookup/topics.
func (h *DropHandlers) Topics() gin.HandlerFunc {
	return h.lookupHandler(func(c *gin.Context) ([]domain.LookupItem, error) {
		return h.api.GetTopics(c.Request.Context())
	})
}

// Schools handles GET /lookup/schools.
func (h *DropHandlers) Schools() gin.HandlerFunc {
	return h.lookupHandler(func(c *gin.Context) ([]domain.LookupItem, error) {
		return h.api.GetSchools(c.Request.Context())
	})
}

// Grades handles GET /lookup/grades.
func (h *DropHandlers) Grades() gin.HandlerFunc {
	return h.lookupHandler(func(c *gin.Context) ([]domain.LookupItem, error) {
		return h.api.GetGrades(c.Request.Context())
	})
}

// EducatorDrops handles GET /educator/drops.
func (h *DropHandlers) EducatorDrops(c *gin.Context) {
	drops, err := h.api.GetEducatorDrops(c.Request.Context(), accessToken(c))
	if err != nil {
		writeRemoteError(c, err, "Could not load drops")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drops})
}

// CreateDropRequest creates a drop; absent fields fall back to the scratch
// pre-fill data.
type CreateDropRequest struct {
	Title string               `json:"title" binding:"required"`
	Form  *domain.DropFormData `json:"form"`
}

// CreateDrop handles POST /drops.
func (h *DropHandlers) CreateDrop(c *gin.Context) {
	var req CreateDropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := middleware.SessionID(c)
	form := req.Form
	if form.Empty() {
		if stored, err := h.scratch.Get(c.Request.Context(), sessionID); err == nil {
			form = stored
		}
	}

	drop, err := h.api.CreateDrop(c.Request.Context(), accessToken(c), req.Title, form)
	if err != nil {
		writeRemoteError(c, err, "Could not create drop")
		return
	}

	// The funnel is over: scratch data is cleared once the drop exists.
	_ = h.scratch.Clear(c.Request.Context(), sessionID)

	c.JSON(http.StatusCreated, gin.H{"data": drop})
}

// PublishDrop handles POST /drops/:id/publish.
func (h *DropHandlers) PublishDrop(c *gin.Context) {
	drop, err := h.api.PublishDrop(c.Request.Context(), accessToken(c), c.Param("id"))
	if err != nil {
		writeRemoteError(c, err, "Could not publish drop")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drop})
}

// Dashboard handles GET /dashboard: the generic landing that never strands
// a user, whatever their role or onboarding state.
func (h *DropHandlers) Dashboard(c *gin.Context) {
	role, _ := c.Get("user_role")
	roleStr, _ := role.(string)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"role": roleStr,
			"home": domain.HomeRouteForRole(domain.Role(roleStr)),
		},
	})
}

// DashboardDrops handles GET /dashboard/drops: educators see their drops,
// students see the available templates.
func (h *DropHandlers) DashboardDrops(c *gin.Context) {
	role, _ := c.Get("user_role")
	if role == string(domain.RoleEducator) {
		h.EducatorDrops(c)
		return
	}
	h.Templates()(c)
}

// DashboardProfile handles GET /dashboard/profile.
func (h *DropHandlers) DashboardProfile(c *gin.Context) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("user_role")
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": userID, "role": role}})
}

func accessToken(c *gin.Context) string {
	token, _ := c.Get("access_token")
	if s, ok := token.(string); ok {
		return s
	}
	return ""
}

// writeRemoteError maps an upstream failure onto the response; unexpected
// errors become a generic bad-gateway message.
func writeRemoteError(c *gin.Context, err error, fallback string) {
	if status := domain.StatusOf(err); status != 0 {
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
}
