// Package chat owns the active conversation, the send/retry request
// pipeline, and the profile/model resolution that feeds it.
package chat

import (
	"github.com/dustinkb1983/nyxchat/internal/models"
)

// BaselineModel is the last-resort identifier used when the catalog is empty.
const BaselineModel = "gpt-4o-mini"

// Catalog is a snapshot of the model configuration. Resolution reads it and
// never mutates it; no ambient lookups happen anywhere in this file.
type Catalog struct {
	BuiltIn []string
	Custom  []models.CustomModel
	Deleted []string
	Default string
}

// Available returns built-in models minus the explicitly deleted ids, plus
// the user-defined custom models, in list order.
func (c Catalog) Available() []string {
	deleted := make(map[string]bool, len(c.Deleted))
	for _, id := range c.Deleted {
		deleted[id] = true
	}
	var out []string
	for _, id := range c.BuiltIn {
		if !deleted[id] {
			out = append(out, id)
		}
	}
	for _, m := range c.Custom {
		out = append(out, m.ID)
	}
	return out
}

// WireModel maps a resolved id to the identifier sent to the remote service:
// custom models carry their own underlying identifier, built-ins pass through.
func (c Catalog) WireModel(id string) string {
	for _, m := range c.Custom {
		if m.ID == id && m.Model != "" {
			return m.Model
		}
	}
	return id
}

// Resolve maps a requested model id to an effective, currently available one.
// Three deterministic tiers: the requested model if still available, else the
// configured default if available, else the first available model, else the
// hardcoded baseline. Model unavailability is never an error.
func Resolve(cat Catalog, requested string) string {
	available := cat.Available()
	for _, id := range available {
		if id == requested {
			return requested
		}
	}
	for _, id := range available {
		if id == cat.Default {
			return cat.Default
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return BaselineModel
}

// ConfigSnapshot bundles everything effective-settings resolution reads.
type ConfigSnapshot struct {
	App             models.AppSettings
	Profiles        []models.Profile
	ActiveProfileID string
	Catalog         Catalog
}

// EffectiveSettings computes the per-request settings: the active profile's
// fields when one is selected and found, otherwise the application-wide
// settings. The model always passes through Resolve.
func EffectiveSettings(snap ConfigSnapshot) models.EffectiveSettings {
	eff := models.EffectiveSettings{
		SystemPrompt: snap.App.SystemPrompt,
		Model:        snap.App.Model,
		Temperature:  snap.App.Temperature,
	}
	if snap.ActiveProfileID != "" && snap.ActiveProfileID != models.GlobalProfileID {
		for _, p := range snap.Profiles {
			if p.ID == snap.ActiveProfileID {
				eff.SystemPrompt = p.SystemPrompt
				eff.Model = p.Model
				eff.Temperature = p.Temperature
				break
			}
		}
	}
	eff.Model = Resolve(snap.Catalog, eff.Model)
	return eff
}
