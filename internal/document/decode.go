package document

import (
	"reflect"
	"time"

	"tastelocal/internal/errors"

	"github.com/go-viper/mapstructure/v2"
)

// TagName is the struct tag that names document fields.
const TagName = "firestore"

// Decode copies a document into the struct pointed to by out. Field names come
// from the `firestore` tag. Numbers are converted between widths and RFC 3339
// strings are accepted for time fields.
func Decode(data Map, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
			millisToTimeHook,
		),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create document decoder")
	}

	if err := decoder.Decode(data); err != nil {
		return errors.Wrap(err, "failed to decode document")
	}

	return nil
}

// millisToTimeHook accepts epoch milliseconds for time fields, as written by
// older clients.
func millisToTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}

	switch v := data.(type) {
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case int:
		return time.UnixMilli(int64(v)).UTC(), nil
	case float64:
		return time.UnixMilli(int64(v)).UTC(), nil
	default:
		return data, nil
	}
}
