package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/BlackWidow29/Entrevista-Docket/internal/model"
	"github.com/BlackWidow29/Entrevista-Docket/internal/repository"
	"github.com/BlackWidow29/Entrevista-Docket/pkg/logger"
	"github.com/BlackWidow29/Entrevista-Docket/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const registryEntity = "registry"

// RegistryRequest is the registry payload accepted by create and update
type RegistryRequest struct {
	ID            *int64 `json:"id"`
	Name          string `json:"name"`
	PostalCode    string `json:"postalCode"`
	StreetAddress string `json:"streetAddress"`
	Neighborhood  string `json:"neighborhood"`
	City          string `json:"city"`
	State         string `json:"state"`
}

func (r *RegistryRequest) toModel() *model.Registry {
	registry := &model.Registry{
		Name:          r.Name,
		PostalCode:    r.PostalCode,
		StreetAddress: r.StreetAddress,
		Neighborhood:  r.Neighborhood,
		City:          r.City,
		State:         r.State,
	}
	if r.ID != nil {
		registry.ID = *r.ID
	}
	return registry
}

// RegistryHandler serves the registry REST resource
type RegistryHandler struct {
	store   repository.RegistryStore
	alerts  alertHeaders
	metrics *prometheus.Metrics
}

// NewRegistryHandler creates the handler. appName prefixes the alert headers;
// metrics may be nil.
func NewRegistryHandler(store repository.RegistryStore, appName string, metrics *prometheus.Metrics) *RegistryHandler {
	return &RegistryHandler{
		store:   store,
		alerts:  alertHeaders{appName: appName},
		metrics: metrics,
	}
}

// Register mounts the registry routes on g
func (h *RegistryHandler) Register(g *echo.Group) {
	g.POST("/registries", h.CreateRegistry)
	g.PUT("/registries", h.UpdateRegistry)
	g.PUT("/registries/:id", h.UpdateRegistry)
	g.GET("/registries", h.ListRegistries)
	g.GET("/registries/:id", h.GetRegistry)
	g.DELETE("/registries/:id", h.DeleteRegistry)
}

// CreateRegistry handles POST /registries
func (h *RegistryHandler) CreateRegistry(c echo.Context) error {
	log := logger.FromEcho(c)

	var req RegistryRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid registry payload", zap.Error(err))
		h.record("create", "bad_request")
		return h.badRequest(c, "Invalid request data", "invalidpayload")
	}

	if req.ID != nil {
		log.Warn("Registry creation with an ID", zap.Int64("registry_id", *req.ID))
		h.record("create", "bad_request")
		return h.badRequest(c, "A new registry cannot already have an ID", "idexists")
	}

	registry := req.toModel()
	if err := h.store.Create(c.Request().Context(), registry); err != nil {
		log.Error("Failed to create registry", zap.String("name", req.Name), zap.Error(err))
		h.record("create", "error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create registry"})
	}

	log.Info("Registry created",
		zap.Int64("registry_id", registry.ID),
		zap.String("name", registry.Name))
	h.record("create", "success")

	id := strconv.FormatInt(registry.ID, 10)
	c.Response().Header().Set(echo.HeaderLocation, "/api/registries/"+id)
	h.alerts.set(c, fmt.Sprintf("A new %s is created with identifier %s", registryEntity, id), id)
	return c.JSON(http.StatusCreated, registry)
}

// UpdateRegistry handles PUT /registries and PUT /registries/:id
func (h *RegistryHandler) UpdateRegistry(c echo.Context) error {
	log := logger.FromEcho(c)

	var req RegistryRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid registry payload", zap.Error(err))
		h.record("update", "bad_request")
		return h.badRequest(c, "Invalid request data", "invalidpayload")
	}

	if req.ID == nil {
		log.Warn("Registry update without an ID")
		h.record("update", "bad_request")
		return h.badRequest(c, "Invalid id", "idnull")
	}

	if param := c.Param("id"); param != "" {
		pathID, err := strconv.ParseInt(param, 10, 64)
		if err != nil || pathID != *req.ID {
			log.Warn("Registry ID does not match path",
				zap.String("path_id", param),
				zap.Int64("body_id", *req.ID))
			h.record("update", "bad_request")
			return h.badRequest(c, "Invalid ID", "idinvalid")
		}
	}

	registry := req.toModel()
	err := h.store.Update(c.Request().Context(), registry)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Warn("Registry not found for update", zap.Int64("registry_id", registry.ID))
		h.record("update", "not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Registry not found"})
	case errors.Is(err, repository.ErrMissingID):
		h.record("update", "bad_request")
		return h.badRequest(c, "Invalid id", "idnull")
	case err != nil:
		log.Error("Failed to update registry", zap.Int64("registry_id", registry.ID), zap.Error(err))
		h.record("update", "error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update registry"})
	}

	log.Info("Registry updated",
		zap.Int64("registry_id", registry.ID),
		zap.String("name", registry.Name))
	h.record("update", "success")

	id := strconv.FormatInt(registry.ID, 10)
	h.alerts.set(c, fmt.Sprintf("A %s is updated with identifier %s", registryEntity, id), id)
	return c.JSON(http.StatusOK, registry)
}

// ListRegistries handles GET /registries
func (h *RegistryHandler) ListRegistries(c echo.Context) error {
	log := logger.FromEcho(c)

	sorts, err := repository.ParseSort(c.QueryParams()["sort"], repository.RegistrySortColumns)
	if err != nil {
		log.Warn("Invalid sort parameter", zap.Strings("sort", c.QueryParams()["sort"]), zap.Error(err))
		h.record("list", "bad_request")
		return h.badRequest(c, err.Error(), "sortinvalid")
	}

	registries, err := h.store.FindAll(c.Request().Context(), sorts...)
	if err != nil {
		log.Error("Failed to list registries", zap.Error(err))
		h.record("list", "error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve registries"})
	}

	log.Debug("Registries retrieved", zap.Int("count", len(registries)))
	h.record("list", "success")
	return c.JSON(http.StatusOK, registries)
}

// GetRegistry handles GET /registries/:id
func (h *RegistryHandler) GetRegistry(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Warn("Invalid registry ID", zap.String("registry_id", c.Param("id")))
		h.record("get", "bad_request")
		return h.badRequest(c, "Invalid ID", "idinvalid")
	}

	registry, err := h.store.FindByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		log.Debug("Registry not found", zap.Int64("registry_id", id))
		h.record("get", "not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Registry not found"})
	}
	if err != nil {
		log.Error("Failed to get registry", zap.Int64("registry_id", id), zap.Error(err))
		h.record("get", "error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve registry"})
	}

	h.record("get", "success")
	return c.JSON(http.StatusOK, registry)
}

// DeleteRegistry handles DELETE /registries/:id
func (h *RegistryHandler) DeleteRegistry(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Warn("Invalid registry ID", zap.String("registry_id", c.Param("id")))
		h.record("delete", "bad_request")
		return h.badRequest(c, "Invalid ID", "idinvalid")
	}

	if err := h.store.DeleteByID(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete registry", zap.Int64("registry_id", id), zap.Error(err))
		h.record("delete", "error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete registry"})
	}

	log.Info("Registry deleted", zap.Int64("registry_id", id))
	h.record("delete", "success")

	param := strconv.FormatInt(id, 10)
	h.alerts.set(c, fmt.Sprintf("A %s is deleted with identifier %s", registryEntity, param), param)
	return c.NoContent(http.StatusNoContent)
}

func (h *RegistryHandler) badRequest(c echo.Context, message, errorKey string) error {
	h.alerts.setError(c, errorKey, registryEntity)
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":      message,
		"entityName": registryEntity,
		"errorKey":   errorKey,
	})
}

func (h *RegistryHandler) record(operation, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordOperation(registryEntity, operation, outcome)
	}
}

// alertHeaders writes the X-<app>-alert family of response headers
type alertHeaders struct {
	appName string
}

func (a alertHeaders) set(c echo.Context, message, param string) {
	c.Response().Header().Set("X-"+a.appName+"-alert", message)
	c.Response().Header().Set("X-"+a.appName+"-params", url.QueryEscape(param))
}

func (a alertHeaders) setError(c echo.Context, errorKey, entityName string) {
	c.Response().Header().Set("X-"+a.appName+"-error", "error."+errorKey)
	c.Response().Header().Set("X-"+a.appName+"-params", entityName)
}
