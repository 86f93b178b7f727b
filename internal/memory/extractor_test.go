package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustinkb1983/nyxchat/internal/models"
)

func TestExtractSplitsClauses(t *testing.T) {
	got := Extract("I like hiking and I prefer tea over coffee. My name is Alex.")
	require.Len(t, got, 3)

	assert.Equal(t, "User i like hiking", got[0].Content)
	assert.Equal(t, models.CategoryPreferences, got[0].Category)
	assert.Equal(t, 6, got[0].Importance)

	assert.Equal(t, "User i prefer tea over coffee", got[1].Content)
	assert.Equal(t, models.CategoryPreferences, got[1].Category)

	assert.Equal(t, "My name is Alex", got[2].Content)
	assert.Equal(t, models.CategoryPersonal, got[2].Category)
	assert.Equal(t, 8, got[2].Importance)
}

func TestExtractPersonal(t *testing.T) {
	got := Extract("I live in Portland, born and raised.")
	require.Len(t, got, 1)
	assert.Equal(t, "I live in Portland", got[0].Content)
	assert.Equal(t, models.CategoryPersonal, got[0].Category)
}

func TestExtractGoal(t *testing.T) {
	got := Extract("My goal is to ship the beta in March!")
	require.Len(t, got, 1)
	assert.Equal(t, "User wants to ship the beta in March", got[0].Content)
	assert.Equal(t, models.CategoryOther, got[0].Category)
	assert.Equal(t, 7, got[0].Importance)
}

func TestExtractNothing(t *testing.T) {
	assert.Empty(t, Extract("What's the weather like today?"))
	assert.Empty(t, Extract(""))
}

func TestExtractCaseInsensitive(t *testing.T) {
	got := Extract("i LOVE spicy food")
	require.Len(t, got, 1)
	assert.Equal(t, "User i love spicy food", got[0].Content)
}
