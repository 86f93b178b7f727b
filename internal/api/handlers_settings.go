package api

import (
	"net/http"

	"github.com/dustinkb1983/nyxchat/internal/chat"
	"github.com/dustinkb1983/nyxchat/internal/models"
	"github.com/dustinkb1983/nyxchat/internal/store"
)

type SettingsHandler struct {
	settings *store.SettingsStore
	builtIn  []string
}

func NewSettingsHandler(settings *store.SettingsStore, builtIn []string) *SettingsHandler {
	return &SettingsHandler{settings: settings, builtIn: builtIn}
}

// Get handles GET /settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	app, err := h.settings.AppSettings()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	profiles, err := h.settings.Profiles()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	custom, err := h.settings.CustomModels()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	deleted, err := h.settings.DeletedModelIDs()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	activeID, err := h.settings.ActiveProfileID()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := models.SettingsResponse{
		Profiles:        profiles,
		ActiveProfileID: activeID,
		CustomModels:    custom,
		DeletedModelIDs: deleted,
		AvailableModels: chat.Catalog{BuiltIn: h.builtIn, Custom: custom, Deleted: deleted}.Available(),
	}
	if app != nil {
		resp.App = *app
	}
	if resp.Profiles == nil {
		resp.Profiles = []models.Profile{}
	}
	if resp.CustomModels == nil {
		resp.CustomModels = []models.CustomModel{}
	}
	if resp.DeletedModelIDs == nil {
		resp.DeletedModelIDs = []string{}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "model is required and temperature must be between 0 and 1")
		return
	}

	app := &models.AppSettings{
		SystemPrompt: req.SystemPrompt,
		Model:        req.Model,
		Temperature:  req.Temperature,
	}
	if err := h.settings.PutAppSettings(app); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, app)
}

// UpdateModels handles PUT /settings/models
func (h *SettingsHandler) UpdateModels(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateModelsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	for _, m := range req.Custom {
		if m.ID == "" || m.Model == "" {
			writeError(w, http.StatusBadRequest, "custom models need id and model")
			return
		}
	}

	if err := h.settings.PutCustomModels(req.Custom); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.settings.PutDeletedModelIDs(req.Deleted); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"availableModels": chat.Catalog{BuiltIn: h.builtIn, Custom: req.Custom, Deleted: req.Deleted}.Available(),
	})
}

// UpdateProfiles handles PUT /settings/profiles
func (h *SettingsHandler) UpdateProfiles(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profiles []models.Profile `json:"profiles"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	for _, p := range req.Profiles {
		if p.ID == "" || p.Model == "" {
			writeError(w, http.StatusBadRequest, "profiles need id and model")
			return
		}
		if p.Temperature < 0 || p.Temperature > 1 {
			writeError(w, http.StatusBadRequest, "temperature must be between 0 and 1")
			return
		}
	}

	if err := h.settings.PutProfiles(req.Profiles); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"profiles": req.Profiles})
}

// SetActiveProfile handles PUT /settings/active-profile
func (h *SettingsHandler) SetActiveProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ActiveProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	// The global sentinel is always selectable; anything else must exist.
	if req.ID != models.GlobalProfileID {
		profiles, err := h.settings.Profiles()
		if err != nil {
			writeDomainError(w, err)
			return
		}
		found := false
		for _, p := range profiles {
			if p.ID == req.ID {
				found = true
				break
			}
		}
		if !found {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
	}

	if err := h.settings.PutActiveProfileID(req.ID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"activeProfileId": req.ID})
}
