package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_PublicPath(t *testing.T) {
	image := &Image{Type: ImageTypePost, Path: "cat.png"}
	assert.Equal(t, "/public/posts/cat.png", image.PublicPath())

	untyped := &Image{Path: "cat.png"}
	assert.Equal(t, "cat.png", untyped.PublicPath())
}

func TestImage_MarshalJSON_RewritesPath(t *testing.T) {
	image := &Image{
		ID:        3,
		PostID:    5,
		Order:     1,
		Type:      ImageTypePost,
		Path:      "cat.png",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(image)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "/public/posts/cat.png", decoded["path"])
	assert.Equal(t, float64(3), decoded["id"])
	assert.Equal(t, float64(1), decoded["order"])

	// The stored file name stays untouched on the entity itself.
	assert.Equal(t, "cat.png", image.Path)
}
