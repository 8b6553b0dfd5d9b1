package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pairandomizer-backend/services"
	"pairandomizer-backend/utils"
)

// GenerateHandler handles generate requests
type GenerateHandler struct {
	generateService *services.GenerateService
	defaultLocale   string
	logger          *zap.Logger
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(generateService *services.GenerateService, defaultLocale string, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		generateService: generateService,
		defaultLocale:   defaultLocale,
		logger:          logger,
	}
}

// Generate handles POST /api/generate
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	locale := h.resolveLocale(r)

	result, err := h.generateService.Generate(locale)
	if err != nil {
		var emptyErr *services.EmptyChoiceError
		switch {
		case errors.Is(err, services.ErrCatalogUnavailable):
			utils.WriteError(w, http.StatusConflict, "catalog_unavailable", err.Error())
		case errors.Is(err, services.ErrGenerateDisabled):
			utils.WriteError(w, http.StatusConflict, "generate_disabled", err.Error())
		case errors.As(err, &emptyErr):
			h.logger.Warn("Generate: malformed catalog data", zap.Error(err))
			utils.WriteError(w, http.StatusUnprocessableEntity, "empty_choice", err.Error())
		default:
			h.logger.Error("Generate: unexpected error", zap.Error(err))
			utils.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// resolveLocale prefers the lang query parameter, then Accept-Language, then the default
func (h *GenerateHandler) resolveLocale(r *http.Request) string {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		return lang
	}
	return services.PreferredLocale(r.Header.Get("Accept-Language"), h.defaultLocale)
}
