package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/concentria/internal/adapters/export"
	"github.com/comitanigiacomo/concentria/internal/core/domain"
	"github.com/comitanigiacomo/concentria/internal/core/services"
)

type ExportHandler struct {
	entries   *services.EntryService
	dashboard *services.DashboardService
}

func NewExportHandler(entries *services.EntryService, dashboard *services.DashboardService) *ExportHandler {
	return &ExportHandler{
		entries:   entries,
		dashboard: dashboard,
	}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	for _, f := range []export.Format{export.FormatCSV, export.FormatXLSX} {
		router.GET("/export."+string(f), h.Filtered(f))
		router.GET("/days/:day/export."+string(f), h.Day(f))
	}
}

// Filtered godoc
// @Summary      Download the sessions matching the dashboard filters
// @Tags         export
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /export.csv [get]
// @Router       /export.xlsx [get]
func (h *ExportHandler) Filtered(f export.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseFilter(c)
		if err != nil {
			handleError(c, err)
			return
		}

		var sessions []domain.SessionEntry
		d, err := h.dashboard.Build(h.entries.Entries(), filter)
		switch {
		case errors.Is(err, domain.ErrNoData) || errors.Is(err, domain.ErrNoMatchingSessions):
		case err != nil:
			handleError(c, err)
			return
		default:
			sessions = d.Sessions
		}

		h.send(c, f, "filtered_sessions", sessions)
	}
}

// Day godoc
// @Summary      Download the sessions of one day
// @Tags         export
// @Param        day  path  string  true  "day"
// @Success      200  {file}  file
// @Router       /days/{day}/export.csv [get]
// @Router       /days/{day}/export.xlsx [get]
func (h *ExportHandler) Day(f export.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, ok := domain.ParseDay(c.Param("day"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
			return
		}

		sessions := services.SessionsOn(h.entries.Entries(), day)
		h.send(c, f, "sessions-"+day.Format(isoDay), sessions)
	}
}

func (h *ExportHandler) send(c *gin.Context, f export.Format, name string, sessions []domain.SessionEntry) {
	var buf bytes.Buffer
	if err := export.Write(&buf, f, sessions); err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.FileName(name)))
	c.Data(http.StatusOK, f.ContentType(), buf.Bytes())
}
