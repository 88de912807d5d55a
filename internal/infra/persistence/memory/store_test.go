package memory

import (
	"context"
	"testing"
	"time"

	"tastelocal/internal/document"
	"tastelocal/internal/domain/repository"
	"tastelocal/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	return func() time.Time { return t }
}

func TestStore_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	store := New(WithClock(fixedClock()))

	created, err := store.Create(ctx, "businesses", "b1", document.Map{"name": "Kota Corner", "menu": []any{}})
	require.NoError(t, err)

	_, err = store.Create(ctx, "businesses", "b1", document.Map{})
	assert.True(t, errors.Is(err, repository.ErrDocumentExists))

	updated, err := store.Update(ctx, "businesses", "b1", document.Map{"menu": []any{document.Map{"id": "item_1"}}})
	require.NoError(t, err)
	assert.True(t, updated.After(created), "versions must increase even with a frozen clock")

	doc, err := store.Get(ctx, "businesses", "b1")
	require.NoError(t, err)
	assert.Equal(t, "Kota Corner", doc.Data["name"], "fields outside the update are kept")
	assert.Equal(t, []any{document.Map{"id": "item_1"}}, doc.Data["menu"])
	assert.Equal(t, updated, doc.UpdateTime)

	_, err = store.Get(ctx, "businesses", "missing")
	assert.True(t, errors.Is(err, repository.ErrDocumentNotFound))
	_, err = store.Update(ctx, "businesses", "missing", document.Map{"name": "x"})
	assert.True(t, errors.Is(err, repository.ErrDocumentNotFound))
}

func TestStore_RejectsAbsent(t *testing.T) {
	ctx := context.Background()
	store := New()
	_, err := store.Create(ctx, "users", "u1", document.Map{"name": "Lerato"})
	require.NoError(t, err)

	_, err = store.Update(ctx, "users", "u1", document.Map{"phone": document.Absent})
	assert.Error(t, err)

	_, err = store.Update(ctx, "users", "u1", document.Map{"menu": []any{document.Map{"image": document.Absent}}})
	assert.Error(t, err)

	_, err = store.Update(ctx, "users", "u1", document.Map{"phone": nil})
	assert.NoError(t, err)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := New()
	data := document.Map{"tags": []any{"a"}}
	_, err := store.Create(ctx, "businesses", "b1", data)
	require.NoError(t, err)

	data["tags"].([]any)[0] = "changed"
	doc, err := store.Get(ctx, "businesses", "b1")
	require.NoError(t, err)
	doc.Data["tags"].([]any)[0] = "changed again"

	again, err := store.Get(ctx, "businesses", "b1")
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, again.Data["tags"])
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	store := New()

	var seen []*repository.Document
	unsubscribe, err := store.Subscribe(ctx, "businesses", "b1", func(doc *repository.Document) {
		seen = append(seen, doc)
	})
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Nil(t, seen[0], "missing documents are reported as nil")

	_, err = store.Create(ctx, "businesses", "b1", document.Map{"name": "Kota Corner"})
	require.NoError(t, err)
	_, err = store.Update(ctx, "businesses", "b1", document.Map{"name": "Kota King"})
	require.NoError(t, err)
	_, err = store.Create(ctx, "businesses", "b2", document.Map{"name": "Other"})
	require.NoError(t, err)

	require.Len(t, seen, 3)
	assert.Equal(t, "Kota King", seen[2].Data["name"])
	assert.True(t, seen[2].UpdateTime.After(seen[1].UpdateTime))

	unsubscribe()
	_, err = store.Update(ctx, "businesses", "b1", document.Map{"name": "Silent"})
	require.NoError(t, err)
	assert.Len(t, seen, 3)
}

func TestStore_SubscribeEndsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := New()
	_, err := store.Create(context.Background(), "businesses", "b1", document.Map{"name": "Kota"})
	require.NoError(t, err)

	calls := make(chan struct{}, 10)
	_, err = store.Subscribe(ctx, "businesses", "b1", func(*repository.Document) { calls <- struct{}{} })
	require.NoError(t, err)
	<-calls

	cancel()
	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()

		return len(store.subs) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestStore_Query(t *testing.T) {
	ctx := context.Background()
	store := New()
	for id, owner := range map[string]string{"b2": "o2", "b1": "o1", "b3": "o1"} {
		_, err := store.Create(ctx, "businesses", id, document.Map{"ownerId": owner})
		require.NoError(t, err)
	}

	all, err := store.QueryAll(ctx, "businesses")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b1", all[0].ID)

	owned, err := store.QueryByField(ctx, "businesses", "ownerId", "o1")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, []string{"b1", "b3"}, []string{owned[0].ID, owned[1].ID})

	none, err := store.QueryAll(ctx, "users")
	require.NoError(t, err)
	assert.Empty(t, none)
}
