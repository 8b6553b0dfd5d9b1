package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"pairandomizer-backend/models"
	"pairandomizer-backend/services"
	"pairandomizer-backend/utils"
)

// StateHandler handles the user's names and settings
type StateHandler struct {
	stateService *services.StateService
	logger       *zap.Logger
}

// NewStateHandler creates a new state handler
func NewStateHandler(stateService *services.StateService, logger *zap.Logger) *StateHandler {
	return &StateHandler{
		stateService: stateService,
		logger:       logger,
	}
}

// GetNames handles GET /api/names
func (h *StateHandler) GetNames(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, models.NamesResponse{Names: h.stateService.Names()})
}

// UpdateNames handles PUT /api/names
func (h *StateHandler) UpdateNames(w http.ResponseWriter, r *http.Request) {
	var request models.NamesUpdateRequest
	if err := utils.ReadJSON(r.Body, &request); err != nil {
		h.logger.Info("UpdateNames: invalid JSON", zap.Error(err))
		utils.WriteError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	var names []string
	if request.Names != nil {
		names = h.stateService.SetNames(request.Names)
	} else {
		names = h.stateService.SetNamesText(request.Text)
	}

	h.logger.Debug("UpdateNames: names updated", zap.Int("count", len(names)))
	utils.WriteJSON(w, http.StatusOK, models.NamesResponse{Names: names})
}

// GetSettings handles GET /api/settings
func (h *StateHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.stateService.Settings())
}

// UpdateSettings handles PUT /api/settings
func (h *StateHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var request models.Settings
	if err := utils.ReadJSON(r.Body, &request); err != nil {
		h.logger.Info("UpdateSettings: invalid JSON", zap.Error(err))
		utils.WriteError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	settings := h.stateService.SetSettings(request)
	utils.WriteJSON(w, http.StatusOK, settings)
}

// UpdateScenarioPin handles PUT /api/settings/scenario
func (h *StateHandler) UpdateScenarioPin(w http.ResponseWriter, r *http.Request) {
	var request models.IndexUpdateRequest
	if err := utils.ReadJSON(r.Body, &request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.stateService.SetScenarioIndex(request.Index))
}

// UpdateScenePin handles PUT /api/settings/scene
func (h *StateHandler) UpdateScenePin(w http.ResponseWriter, r *http.Request) {
	var request models.IndexUpdateRequest
	if err := utils.ReadJSON(r.Body, &request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.stateService.SetSceneIndex(request.Index))
}
