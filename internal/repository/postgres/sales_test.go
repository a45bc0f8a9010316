package postgres

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAddons(t *testing.T) {
	id := uuid.New()
	data := []byte(fmt.Sprintf(
		`[{"addon_id":"%s","name":"Granola","price":2,"quantity":2}]`, id,
	))

	addons, err := decodeAddons(data)
	require.NoError(t, err)
	require.Len(t, addons, 1)
	assert.Equal(t, id, addons[0].Addon.ID)
	assert.Equal(t, "Granola", addons[0].Addon.Name)
	assert.Equal(t, 2.0, addons[0].Addon.Price)
	assert.Equal(t, 2, addons[0].Quantity)
}

func TestDecodeAddonsEmpty(t *testing.T) {
	for _, data := range [][]byte{nil, []byte(`[]`)} {
		addons, err := decodeAddons(data)
		require.NoError(t, err)
		assert.Nil(t, addons)
	}
}

func TestDecodeAddonsRejectsMalformedRecords(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing id", `[{"name":"Granola","price":2,"quantity":1}]`},
		{"zero quantity", fmt.Sprintf(`[{"addon_id":"%s","name":"Granola","price":2,"quantity":0}]`, id)},
		{"negative price", fmt.Sprintf(`[{"addon_id":"%s","name":"Granola","price":-2,"quantity":1}]`, id)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeAddons([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
