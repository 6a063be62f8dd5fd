package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
	"github.com/comitanigiacomo/concentria/internal/core/services"
)

type EntryHandler struct {
	svc *services.EntryService
	now func() time.Time
}

func NewEntryHandler(svc *services.EntryService) *EntryHandler {
	return &EntryHandler{
		svc: svc,
		now: time.Now,
	}
}

type createEntryRequest struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Hardness int    `json:"hardness"`
	Note     string `json:"note"`
	Date     string `json:"date"`
	Clock    string `json:"clock"`
}

type removeEntryRequest struct {
	Date     string `json:"date" binding:"required"`
	Clock    string `json:"clock"`
	Title    string `json:"title" binding:"required"`
	Duration int    `json:"duration"`
	Note     string `json:"note"`
	Hardness int    `json:"hardness"`
}

// RegisterRoutes mounts the read route on router and the writes on protected.
func (h *EntryHandler) RegisterRoutes(router, protected *gin.RouterGroup) {
	router.GET("/entries", h.List)

	entries := protected.Group("/entries")
	{
		entries.POST("", h.Create)
		entries.DELETE("", h.Delete)
	}
}

// List godoc
// @Summary      Stored sessions, optionally for one day
// @Tags         entries
// @Produce      json
// @Param        day  query  string  false  "day filter"
// @Success      200  {array}  domain.SessionEntry
// @Router       /entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	day, err := queryDay(c, "day")
	if err != nil {
		handleError(c, err)
		return
	}

	list := h.svc.Entries()
	if !day.IsZero() {
		list = services.SessionsOn(list, day)
	}
	if list == nil {
		list = []domain.SessionEntry{}
	}

	c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary      Log a session
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        entry  body  createEntryRequest  true  "session"
// @Success      201  {object}  domain.SessionEntry
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /entries [post]
func (h *EntryHandler) Create(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		handleError(c, domain.ErrTitleRequired)
		return
	}
	if req.Duration <= 0 {
		handleError(c, domain.ErrDurationRequired)
		return
	}
	if !domain.ValidHardness(req.Hardness) {
		req.Hardness = domain.DefaultHardness
	}

	entry := domain.NewSessionEntry(req.Title, req.Duration, req.Hardness, req.Note, h.now())
	if req.Date != "" {
		day, ok := domain.ParseDay(req.Date)
		if !ok {
			handleError(c, domain.ErrInvalidDate)
			return
		}
		entry.Date = domain.DayKey(day)
	}
	if req.Clock != "" {
		entry.Clock = strings.TrimSpace(req.Clock)
	}

	added, err := h.svc.Add(c.Request.Context(), entry)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, added)
}

// Delete godoc
// @Summary      Remove the first matching session
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        entry  body  removeEntryRequest  true  "session to remove"
// @Success      200  {object}  domain.SessionEntry
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /entries [delete]
func (h *EntryHandler) Delete(c *gin.Context) {
	var req removeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	removed, err := h.svc.Remove(c.Request.Context(), domain.EntryMatcher{
		Date:     req.Date,
		Clock:    req.Clock,
		Title:    req.Title,
		Duration: req.Duration,
		Note:     req.Note,
		Hardness: req.Hardness,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, removed)
}
