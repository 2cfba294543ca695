// Package document turns raw backend documents into validated entities.
// Documents arrive as map[string]any from both Firestore and the in-process backend;
// nothing is trusted until it has been decoded and validated here.
package document

import (
	"reflect"
	"strings"
	"sync"
	"time"

	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/domain/repository"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// Identifiable entities receive their backend document id after decoding.
type Identifiable interface {
	SetID(id string)
}

// Result is the tagged outcome of decoding one document.
type Result[T any] struct {
	ID    string
	Value T
	Err   error
}

// OK reports whether the document decoded and validated.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the process-wide validator used for documents and inputs.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	return validate
}

// Decode decodes data into a T and validates it. When *T is Identifiable the id is set.
// Failures wrap domainerrors.ErrDocumentInvalid.
func Decode[T any](id string, data map[string]any) Result[T] {
	var value T
	if data == nil {
		return Result[T]{ID: id, Err: errors.Wrapf(domainerrors.ErrDocumentInvalid, "document %s has no data", id)}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &value,
		TagName: "firestore",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			int64ToTimeHook,
		),
		WeaklyTypedInput: false,
	})
	if err != nil {
		return Result[T]{ID: id, Err: errors.WithStack(err)}
	}
	if err := decoder.Decode(data); err != nil {
		return Result[T]{ID: id, Err: errors.Wrapf(domainerrors.ErrDocumentInvalid, "document %s: %v", id, err)}
	}

	if err := Validator().Struct(&value); err != nil {
		return Result[T]{ID: id, Err: errors.Wrapf(domainerrors.ErrDocumentInvalid, "document %s: %v", id, err)}
	}

	if identifiable, ok := any(&value).(Identifiable); ok {
		identifiable.SetID(id)
	}

	return Result[T]{ID: id, Value: value}
}

// DecodeSnapshot decodes every document of a collection snapshot, keeping the backend order.
func DecodeSnapshot[T any](ids []string, data []map[string]any) repository.Snapshot[T] {
	snapshot := repository.Snapshot[T]{Items: make([]T, 0, len(ids))}
	for i, id := range ids {
		result := Decode[T](id, data[i])
		if !result.OK() {
			snapshot.Invalid = append(snapshot.Invalid, repository.InvalidDocument{ID: id, Err: result.Err})

			continue
		}
		snapshot.Items = append(snapshot.Items, result.Value)
	}

	return snapshot
}

// Encode turns an entity into document fields keyed by the same firestore tags Decode reads.
// Fields tagged "-" are dropped; values, including time.Time and nested structs, are kept as-is.
func Encode(value any) (map[string]any, error) {
	v := reflect.Indirect(reflect.ValueOf(value))
	if v.Kind() != reflect.Struct {
		return nil, errors.Errorf("encode: expected struct, got %s", v.Kind())
	}

	out := make(map[string]any, v.NumField())
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("firestore")
		if name == "-" {
			continue
		}
		if comma := strings.IndexByte(name, ','); comma >= 0 {
			name = name[:comma]
		}
		if name == "" {
			name = field.Name
		}
		out[name] = v.Field(i).Interface()
	}

	return out, nil
}

// int64ToTimeHook accepts unix-millisecond timestamps for time fields.
func int64ToTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	switch v := data.(type) {
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case int:
		return time.UnixMilli(int64(v)).UTC(), nil
	default:
		return data, nil
	}
}
