package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"panelscope/domain/bookmark"
	"panelscope/domain/core"
	"panelscope/domain/preset"
)

func (a *App) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.bookmarks.Load(r.Context()))
}

func (a *App) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	var b bookmark.Bookmark
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respondBadRequest(w, "invalid bookmark: "+err.Error())
		return
	}
	if b.PanelID == "" {
		respondBadRequest(w, "panelId is required")
		return
	}
	respondJSON(w, http.StatusCreated, a.bookmarks.Add(r.Context(), b))
}

func (a *App) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	panelID, err := core.ParsePanelID(chi.URLParam(r, "panelID"))
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, a.bookmarks.Remove(r.Context(), panelID))
}

func (a *App) handleClearBookmarks(w http.ResponseWriter, r *http.Request) {
	a.bookmarks.ClearAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleListPresets(w http.ResponseWriter, r *http.Request) {
	if scope := preset.Scope(r.URL.Query().Get("scope")); scope != "" {
		if !scope.Valid() {
			respondBadRequest(w, "unknown scope: "+string(scope))
			return
		}
		respondJSON(w, http.StatusOK, a.presets.GetByScope(r.Context(), scope))
		return
	}
	respondJSON(w, http.StatusOK, a.presets.Load(r.Context()))
}

type addPresetBody struct {
	Name    string         `json:"name"`
	Filters preset.Filters `json:"filters"`
	Scope   preset.Scope   `json:"scope"`
}

func (a *App) handleAddPreset(w http.ResponseWriter, r *http.Request) {
	var body addPresetBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "invalid preset: "+err.Error())
		return
	}
	if body.Name == "" {
		respondBadRequest(w, "name is required")
		return
	}
	if body.Scope == "" {
		body.Scope = preset.ScopePersonal
	}
	if !body.Scope.Valid() {
		respondBadRequest(w, "unknown scope: "+string(body.Scope))
		return
	}
	respondJSON(w, http.StatusCreated, a.presets.Add(r.Context(), body.Name, body.Filters, body.Scope))
}

type updatePresetBody struct {
	Name    *string         `json:"name,omitempty"`
	Filters *preset.Filters `json:"filters,omitempty"`
	Scope   *preset.Scope   `json:"scope,omitempty"`
}

func (a *App) handleUpdatePreset(w http.ResponseWriter, r *http.Request) {
	var body updatePresetBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "invalid update: "+err.Error())
		return
	}
	if body.Scope != nil && !body.Scope.Valid() {
		respondBadRequest(w, "unknown scope: "+string(*body.Scope))
		return
	}

	id := core.PresetID(chi.URLParam(r, "id"))
	updated, err := a.presets.Update(r.Context(), id, preset.Update{
		Name:    body.Name,
		Filters: body.Filters,
		Scope:   body.Scope,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (a *App) handleRemovePreset(w http.ResponseWriter, r *http.Request) {
	id := core.PresetID(chi.URLParam(r, "id"))
	respondJSON(w, http.StatusOK, a.presets.Remove(r.Context(), id))
}
