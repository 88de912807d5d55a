package mutation

import (
	"strings"
	"time"

	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
)

// AddMediaItem puts a photo or video at the top of the gallery.
type AddMediaItem struct {
	Item entity.MediaItem
}

func (AddMediaItem) Name() string     { return "addMediaItem" }
func (AddMediaItem) Fields() []string { return []string{entity.FieldMedia} }

func (c AddMediaItem) Apply(current *entity.Business, now time.Time) (*entity.Business, error) {
	item := c.Item
	item.ID = newID(PrefixMedia, item.ID)
	if !item.Type.IsValid() {
		return nil, domainerrors.Validation("unknown media type " + string(item.Type))
	}
	if strings.TrimSpace(item.URL) == "" {
		return nil, domainerrors.Validation("media url is required")
	}
	if item.UploadedAt.IsZero() {
		item.UploadedAt = now
	}
	if indexOf(current.Media, func(m entity.MediaItem) bool { return m.ID == item.ID }) >= 0 || current.IsDeleted(entity.FieldMedia, item.ID) {
		return nil, duplicate("media item", item.ID)
	}

	next := current.Copy()
	next.Media = prepend(item, current.Media)

	return next, nil
}

// DeleteMediaItem removes one gallery entry.
type DeleteMediaItem struct {
	ID string
}

func (DeleteMediaItem) Name() string     { return "deleteMediaItem" }
func (DeleteMediaItem) Fields() []string { return []string{entity.FieldMedia, entity.FieldDeletedIDs} }

func (c DeleteMediaItem) Apply(current *entity.Business, _ time.Time) (*entity.Business, error) {
	i := indexOf(current.Media, func(m entity.MediaItem) bool { return m.ID == c.ID })
	if i < 0 {
		return nil, notFound("media item", c.ID)
	}

	next := current.Copy()
	next.Media = removeAt(current.Media, i)
	next.DeletedIDs = current.WithDeleted(entity.FieldMedia, c.ID)

	return next, nil
}
