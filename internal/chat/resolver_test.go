package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dustinkb1983/nyxchat/internal/models"
)

func TestResolve(t *testing.T) {
	cat := Catalog{
		BuiltIn: []string{"gpt-4o", "gpt-4o-mini", "gpt-4.1"},
		Custom:  []models.CustomModel{{ID: "my-local", Name: "Local", Model: "llama3:8b"}},
		Deleted: []string{"gpt-4.1"},
		Default: "gpt-4o-mini",
	}

	tests := []struct {
		name      string
		cat       Catalog
		requested string
		want      string
	}{
		{"requested available", cat, "gpt-4o", "gpt-4o"},
		{"custom model available", cat, "my-local", "my-local"},
		{"deleted falls back to default", cat, "gpt-4.1", "gpt-4o-mini"},
		{"unknown falls back to default", cat, "claude-3", "gpt-4o-mini"},
		{
			"default unavailable falls back to first",
			Catalog{BuiltIn: []string{"gpt-4o", "gpt-4o-mini"}, Deleted: []string{"gpt-4o-mini"}, Default: "gpt-4o-mini"},
			"nope",
			"gpt-4o",
		},
		{"empty catalog yields baseline", Catalog{}, "anything", BaselineModel},
		{
			"everything deleted yields baseline",
			Catalog{BuiltIn: []string{"gpt-4o"}, Deleted: []string{"gpt-4o"}, Default: "gpt-4o"},
			"gpt-4o",
			BaselineModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.cat, tt.requested))
		})
	}
}

func TestCatalogAvailable(t *testing.T) {
	cat := Catalog{
		BuiltIn: []string{"a", "b", "c"},
		Custom:  []models.CustomModel{{ID: "x", Model: "x-wire"}},
		Deleted: []string{"b"},
	}
	assert.Equal(t, []string{"a", "c", "x"}, cat.Available())
}

func TestCatalogWireModel(t *testing.T) {
	cat := Catalog{
		BuiltIn: []string{"gpt-4o"},
		Custom:  []models.CustomModel{{ID: "my-local", Model: "llama3:8b"}},
	}
	assert.Equal(t, "llama3:8b", cat.WireModel("my-local"))
	assert.Equal(t, "gpt-4o", cat.WireModel("gpt-4o"))
}

func TestEffectiveSettings(t *testing.T) {
	snap := ConfigSnapshot{
		App: models.AppSettings{SystemPrompt: "app prompt", Model: "gpt-4o", Temperature: 0.7},
		Profiles: []models.Profile{
			{ID: "work", SystemPrompt: "work prompt", Model: "gpt-4.1", Temperature: 0.2},
		},
		Catalog: Catalog{BuiltIn: []string{"gpt-4o", "gpt-4.1"}, Default: "gpt-4o"},
	}

	t.Run("no active profile uses app settings", func(t *testing.T) {
		eff := EffectiveSettings(snap)
		assert.Equal(t, "app prompt", eff.SystemPrompt)
		assert.Equal(t, "gpt-4o", eff.Model)
		assert.Equal(t, 0.7, eff.Temperature)
	})

	t.Run("global sentinel uses app settings", func(t *testing.T) {
		s := snap
		s.ActiveProfileID = models.GlobalProfileID
		eff := EffectiveSettings(s)
		assert.Equal(t, "app prompt", eff.SystemPrompt)
	})

	t.Run("active profile overrides", func(t *testing.T) {
		s := snap
		s.ActiveProfileID = "work"
		eff := EffectiveSettings(s)
		assert.Equal(t, "work prompt", eff.SystemPrompt)
		assert.Equal(t, "gpt-4.1", eff.Model)
		assert.Equal(t, 0.2, eff.Temperature)
	})

	t.Run("missing profile falls back to app settings", func(t *testing.T) {
		s := snap
		s.ActiveProfileID = "gone"
		eff := EffectiveSettings(s)
		assert.Equal(t, "app prompt", eff.SystemPrompt)
		assert.Equal(t, "gpt-4o", eff.Model)
	})

	t.Run("profile model resolves through the catalog", func(t *testing.T) {
		s := snap
		s.ActiveProfileID = "work"
		s.Catalog.Deleted = []string{"gpt-4.1"}
		eff := EffectiveSettings(s)
		assert.Equal(t, "work prompt", eff.SystemPrompt)
		assert.Equal(t, "gpt-4o", eff.Model)
	})
}
