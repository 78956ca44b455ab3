package scan

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"prospector_backend/platform/httpkit"
	"prospector_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler exposes the aggregation engine over HTTP. It is thin glue: all
// rendering and export operates on the returned ScanResult.
type Handler struct {
	svc *Service
	val *validator.Validator
}

// NewHandler creates the scan HTTP handler.
func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RunScan handles POST /prospects/scan.
func (h *Handler) RunScan(c *gin.Context) {
	var dto ScanRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil && !errors.Is(err, io.EOF) {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(dto); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	res, err := h.svc.Scan(c.Request.Context(), Request{ZoneIDs: dto.Zones, Limit: dto.Limit})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, res)
}

// ExportCSV handles GET /prospects/scan/export. It runs a fresh scan and
// streams the result as CSV.
func (h *Handler) ExportCSV(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httpkit.Error(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	res, err := h.svc.Scan(c.Request.Context(), Request{ZoneIDs: c.QueryArray("zone"), Limit: limit})
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="prospects.csv"`)
	c.Status(http.StatusOK)

	if err := WriteCSV(c.Writer, res); err != nil {
		// Headers are already out; all we can do is log through gin's error list.
		_ = c.Error(err)
	}
}
