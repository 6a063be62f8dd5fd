package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/concentria/internal/adapters/render"
	"github.com/comitanigiacomo/concentria/internal/core/domain"
	"github.com/comitanigiacomo/concentria/internal/core/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

const isoDay = "2006-01-02"

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"iso": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(isoDay)
	},
}).ParseFS(templatesFS, "templates/dashboard.html"))

// DashboardHandler serves the read only views from the stored snapshot, through the cache when
// one is configured. Day lookups use the in-memory list.
type DashboardHandler struct {
	entries   *services.EntryService
	dashboard *services.DashboardService
	stats     *services.StatsService
	sink      render.Sink
}

func NewDashboardHandler(entries *services.EntryService, dashboard *services.DashboardService, stats *services.StatsService, sink render.Sink) *DashboardHandler {
	return &DashboardHandler{
		entries:   entries,
		dashboard: dashboard,
		stats:     stats,
		sink:      sink,
	}
}

type dayResponse struct {
	Day       string                `json:"day"`
	Aggregate domain.DayAggregate   `json:"aggregate"`
	Sessions  []domain.SessionEntry `json:"sessions"`
}

// RegisterPages mounts the browser facing routes outside the API group.
func (h *DashboardHandler) RegisterPages(router gin.IRoutes) {
	router.GET("/", h.Page)
	router.GET("/charts", h.Charts)
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Dashboard)
	router.GET("/overview", h.Overview)
	router.GET("/days/:day", h.Day)
}

// Dashboard godoc
// @Summary      Filtered dashboard aggregates
// @Tags         dashboard
// @Produce      json
// @Param        from          query  string  false  "first day (any supported date format)"
// @Param        to            query  string  false  "last day"
// @Param        title         query  []string  false  "titles to keep (repeat or comma separated)"
// @Param        min_duration  query  int     false  "minimum minutes"
// @Param        hardness_min  query  int     false  "minimum hardness, unset counts as 0"
// @Param        hardness_max  query  int     false  "maximum hardness (default 10, 0 keeps only unset hardness)"
// @Param        month         query  int     false  "month shown by the monthly chart"
// @Param        year          query  int     false  "year shown by the monthly chart"
// @Param        day           query  string  false  "day shown by the inspector"
// @Success      200  {object}  domain.Dashboard
// @Failure      400  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		handleError(c, err)
		return
	}

	d, err := h.dashboard.Load(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}

// Overview godoc
// @Summary      Latest day, last 7 days and 14 day trend
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.Overview
// @Router       /overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	ov, err := h.stats.LoadOverview(c.Request.Context(), time.Time{})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ov)
}

// Day godoc
// @Summary      Aggregate and sessions of one day
// @Tags         dashboard
// @Produce      json
// @Param        day  path  string  true  "day, e.g. 2025-01-06 or 06-01-25"
// @Success      200  {object}  dayResponse
// @Failure      400  {object}  map[string]string
// @Router       /days/{day} [get]
func (h *DashboardHandler) Day(c *gin.Context) {
	day, ok := domain.ParseDay(c.Param("day"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}

	entries := h.entries.Entries()
	sessions := services.SessionsOn(entries, day)
	if sessions == nil {
		sessions = []domain.SessionEntry{}
	}

	// stored dates may use any accepted layout, aggregate them under one key
	key := domain.DayKey(day)
	keyed := make([]domain.SessionEntry, len(sessions))
	for i, e := range sessions {
		e.Date = key
		keyed[i] = e
	}

	c.JSON(http.StatusOK, dayResponse{
		Day:       day.Format(isoDay),
		Aggregate: h.stats.AggregateDay(keyed, key),
		Sessions:  sessions,
	})
}

type pageView struct {
	Query     string
	Filter    domain.DashboardFilter
	Dashboard *domain.Dashboard
	Message   string
}

func (h *DashboardHandler) Page(c *gin.Context) {
	view := pageView{Query: c.Request.URL.RawQuery}

	filter, err := parseFilter(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	view.Filter = filter

	d, err := h.dashboard.Load(c.Request.Context(), filter)
	switch {
	case errors.Is(err, domain.ErrNoData):
		view.Message = "No data found. Log a session first."
	case errors.Is(err, domain.ErrNoMatchingSessions):
		view.Message = "No sessions match the filters."
	case err != nil:
		handleError(c, err)
		return
	default:
		view.Dashboard = d
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		log.Printf("[ERROR] Dashboard page failed: %v", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// Charts serves the chart page embedded by the dashboard, built with the same filters.
func (h *DashboardHandler) Charts(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.dashboard.Load(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) || errors.Is(err, domain.ErrNoMatchingSessions) {
			c.String(http.StatusOK, err.Error())
			return
		}
		handleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.sink.RenderDashboard(&buf, d); err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
