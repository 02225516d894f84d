package handler

import (
	"net/http"

	"github.com/BlackWidow29/Entrevista-Docket/internal/repository"
	"github.com/BlackWidow29/Entrevista-Docket/internal/view"
	"github.com/BlackWidow29/Entrevista-Docket/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ViewHandler renders the server-side pages
type ViewHandler struct {
	registries   repository.RegistryStore
	certificates repository.CertificateStore
}

// NewViewHandler creates the page handler
func NewViewHandler(registries repository.RegistryStore, certificates repository.CertificateStore) *ViewHandler {
	return &ViewHandler{registries: registries, certificates: certificates}
}

// ShowAllRegistries renders every registry and every certificate on one page
func (h *ViewHandler) ShowAllRegistries(c echo.Context) error {
	log := logger.FromEcho(c)
	ctx := c.Request().Context()

	registries, err := h.registries.FindAll(ctx)
	if err != nil {
		log.Error("Failed to load registries for view", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load registries")
	}

	certificates, err := h.certificates.FindAll(ctx)
	if err != nil {
		log.Error("Failed to load certificates for view", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load certificates")
	}

	registryCount, err := h.registries.Count(ctx)
	if err != nil {
		log.Error("Failed to count registries for view", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count registries")
	}

	certificateCount, err := h.certificates.Count(ctx)
	if err != nil {
		log.Error("Failed to count certificates for view", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count certificates")
	}

	return c.Render(http.StatusOK, view.RegistryPage, view.RegistryPageData{
		Title:            "Registries",
		Registries:       registries,
		Certificates:     certificates,
		RegistryCount:    registryCount,
		CertificateCount: certificateCount,
	})
}
