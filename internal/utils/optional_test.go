package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
}

func TestOptional_DistinguishesAbsentFromEmpty(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"description": ""}`), &p))

	assert.False(t, p.Title.Set)
	assert.Nil(t, p.Title.Ptr())
	assert.True(t, p.Description.Set)
	require.NotNil(t, p.Description.Ptr())
	assert.Equal(t, "", *p.Description.Ptr())
}

func TestOptional_NullIsAbsent(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"title": null}`), &p))

	assert.False(t, p.Title.Set)
}

func TestOptional_WrongTypeFails(t *testing.T) {
	var p patch
	assert.Error(t, json.Unmarshal([]byte(`{"title": 12}`), &p))
}

func TestOptional_Marshal(t *testing.T) {
	body, err := json.Marshal(patch{Title: Some("Buy milk")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "Buy milk", "description": null}`, string(body))
}
