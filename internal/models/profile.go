package models

// GlobalProfileID is the sentinel meaning "use application-wide settings
// instead of a profile".
const GlobalProfileID = "global"

// Profile bundles a system prompt, model, and sampling temperature. Profiles
// are edited by the settings UI and consumed read-only by the core.
type Profile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SystemPrompt string  `json:"systemPrompt"`
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
}

// CustomModel is a user-defined catalog entry. ID is what profiles reference;
// Model is the identifier sent to the remote service.
type CustomModel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
}

// AppSettings are the application-wide defaults used when the active profile
// is the global sentinel or cannot be found.
type AppSettings struct {
	SystemPrompt string  `json:"systemPrompt"`
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
}

// EffectiveSettings are derived per request, never stored: the active profile
// (or the global settings) with the model validated against the catalog.
type EffectiveSettings struct {
	SystemPrompt string  `json:"systemPrompt"`
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
}

// PromptTemplate is a reusable prompt snippet managed by the UI.
type PromptTemplate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}
