package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeItem struct {
	ID        string  `firestore:"id"`
	Price     string  `firestore:"price"`
	Available bool    `firestore:"available"`
	Image     *string `firestore:"image,omitempty"`
}

type decodeTarget struct {
	Name      string       `firestore:"name"`
	Rating    float64      `firestore:"rating"`
	Total     int          `firestore:"totalOrders"`
	CreatedAt time.Time    `firestore:"createdAt"`
	UpdatedAt time.Time    `firestore:"updatedAt"`
	Items     []decodeItem `firestore:"menu"`
	Tags      []string     `firestore:"tags"`
}

func TestDecode(t *testing.T) {
	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	data := Map{
		"name":        "Kota King",
		"rating":      int64(4),
		"totalOrders": int64(12),
		"createdAt":   created,
		"updatedAt":   "2025-05-02T10:00:00Z",
		"menu": []any{
			Map{"id": "item_1", "price": "55", "available": true, "image": "https://cdn/kota.png"},
			Map{"id": "item_2", "price": "30", "available": false},
		},
		"tags":    []any{"Snacks", "Street Food"},
		"unknown": "ignored",
	}

	var out decodeTarget
	require.NoError(t, Decode(data, &out))

	assert.Equal(t, "Kota King", out.Name)
	assert.InDelta(t, 4.0, out.Rating, 0.0001)
	assert.Equal(t, 12, out.Total)
	assert.True(t, created.Equal(out.CreatedAt))
	assert.True(t, out.UpdatedAt.Equal(time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)))
	require.Len(t, out.Items, 2)
	require.NotNil(t, out.Items[0].Image)
	assert.Equal(t, "https://cdn/kota.png", *out.Items[0].Image)
	assert.Nil(t, out.Items[1].Image)
	assert.False(t, out.Items[1].Available)
	assert.Equal(t, []string{"Snacks", "Street Food"}, out.Tags)
}

func TestDecode_EpochMillis(t *testing.T) {
	var out decodeTarget
	require.NoError(t, Decode(Map{"createdAt": int64(1_700_000_000_000)}, &out))

	assert.Equal(t, int64(1_700_000_000_000), out.CreatedAt.UnixMilli())
}

func TestPickAndCopy(t *testing.T) {
	doc := Map{"menu": []any{Map{"id": "a"}}, "name": "x"}

	picked := Pick(doc, "menu", "missing")
	assert.Equal(t, Map{"menu": []any{Map{"id": "a"}}}, picked)

	copied := CopyMap(doc)
	copied["menu"].([]any)[0].(Map)["id"] = "b"
	assert.Equal(t, "a", doc["menu"].([]any)[0].(Map)["id"])
}
