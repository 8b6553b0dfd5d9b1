package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"pairandomizer-backend/services"
	"pairandomizer-backend/utils"
)

// CatalogHandler handles catalog status and reload requests
type CatalogHandler struct {
	catalogService *services.CatalogService
	loadCtx        context.Context
	logger         *zap.Logger
}

// NewCatalogHandler creates a new catalog handler. Background reloads run
// under loadCtx rather than the request context.
func NewCatalogHandler(catalogService *services.CatalogService, loadCtx context.Context, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		loadCtx:        loadCtx,
		logger:         logger,
	}
}

// GetStatus handles GET /api/catalog/status
func (h *CatalogHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.catalogService.Status())
}

// GetCatalog handles GET /api/catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalogService.Catalog()
	if err != nil {
		utils.WriteError(w, http.StatusConflict, "catalog_unavailable", err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, services.Describe(catalog))
}

// ReloadCatalog handles POST /api/catalog/reload
func (h *CatalogHandler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	err := h.catalogService.StartLoad(h.loadCtx)
	if errors.Is(err, services.ErrLoadInProgress) {
		h.logger.Info("ReloadCatalog: load already in progress")
		utils.WriteError(w, http.StatusConflict, "load_in_progress", err.Error())
		return
	}
	if err != nil {
		h.logger.Error("ReloadCatalog: failed to start load", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	h.logger.Info("ReloadCatalog: load started")
	utils.WriteJSON(w, http.StatusAccepted, h.catalogService.Status())
}
