package scan

import (
	apphttp "prospector_backend/internal/http"
	"prospector_backend/platform/validator"
)

// Module wires the prospect scan HTTP routes.
type Module struct {
	handler *Handler
}

// NewModule creates the scan module around an initialized service.
func NewModule(svc *Service, val *validator.Validator) *Module {
	return &Module{handler: NewHandler(svc, val)}
}

func (m *Module) Name() string {
	return "scan"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/prospects")
	group.POST("/scan", m.handler.RunScan)
	group.GET("/scan/export", m.handler.ExportCSV)
}

var _ apphttp.Module = (*Module)(nil)
