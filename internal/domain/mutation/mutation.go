// Package mutation holds one command type per business mutation. A command is a
// pure transform from the current aggregate to the next one; it never edits its
// input and names the top-level document fields it touches.
package mutation

import (
	"time"

	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"

	"github.com/google/uuid"
)

// Command is a single business mutation.
type Command interface {
	// Name identifies the operation in logs and metrics.
	Name() string
	// Fields lists the top-level document fields the command rewrites.
	Fields() []string
	// Apply returns the next aggregate. now is the store clock.
	Apply(current *entity.Business, now time.Time) (*entity.Business, error)
}

// Identifier prefixes for generated ids.
const (
	PrefixBusiness     = "business"
	PrefixMenuItem     = "item"
	PrefixOrder        = "order"
	PrefixNotification = "notif"
	PrefixMedia        = "media"
	PrefixBlogPost     = "post"
)

// GenerateID returns a fresh identifier such as item_<uuid>.
func GenerateID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// newID returns id, or a fresh prefixed identifier when id is empty.
func newID(prefix, id string) string {
	if id != "" {
		return id
	}

	return GenerateID(prefix)
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}

	return -1
}

// prepend returns a new slice with item first.
func prepend[T any](item T, items []T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)

	return append(out, items...)
}

// appendCopy returns a new slice with item last.
func appendCopy[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)

	return append(out, item)
}

// replaceAt returns a new slice with items[i] replaced.
func replaceAt[T any](items []T, i int, item T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[i] = item

	return out
}

// removeAt returns a new slice without items[i].
func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)

	return append(out, items[i+1:]...)
}

func notFound(kind, id string) error {
	return domainerrors.NotFound(kind + " " + id + " not found")
}

func duplicate(kind, id string) error {
	return domainerrors.Validation(kind + " id " + id + " is already in use")
}
