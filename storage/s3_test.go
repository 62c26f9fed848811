package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key, err := ObjectKey("food-items", 12, "Chips Masala.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "food-items/12/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	other, err := ObjectKey("food-items", 12, "Chips Masala.PNG")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	for _, name := range []string{"script.sh", "noext", "image.gif"} {
		_, err := ObjectKey("restaurants", 1, name)
		assert.Error(t, err, name)
	}
}

func TestDisabledUploader(t *testing.T) {
	_, err := Disabled{}.Upload(context.Background(), "k", strings.NewReader("x"), "image/png")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
