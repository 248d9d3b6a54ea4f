package graphstream

import (
	"context"
	"reflect"
	"sort"

	"github.com/randalmurphal/graphstream/pkg/graphstream/message"
)

// extract recursively discovers messages inside an arbitrary node result and
// emits each one with deduplication. Traversal is capped at h.maxDepth, which
// bounds cost on deep or cyclic structures without explicit cycle detection.
// Dispatch order: message, map, non-text sequence, Command update payload,
// exported struct fields. Caller holds h.mu. Returns the number of chunks
// forwarded.
func (h *Handler) extract(ctx context.Context, meta *runMeta, v any, depth int) int {
	if v == nil || depth >= h.maxDepth {
		return 0
	}

	if msg, ok := asMessage(v); ok {
		if h.emit(ctx, meta, msg, true, kindOutput) {
			return 1
		}
		return 0
	}

	found := 0
	switch cmd := v.(type) {
	case *Command:
		if cmd != nil {
			found = h.extract(ctx, meta, cmd.Update, depth+1)
		}
		return found
	case Command:
		return h.extract(ctx, meta, cmd.Update, depth+1)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !rv.IsNil() {
			// Indirection is not a container level; depth is unchanged.
			found += h.extract(ctx, meta, rv.Elem().Interface(), depth)
		}

	case reflect.Map:
		for _, key := range sortedMapKeys(rv) {
			found += h.extract(ctx, meta, rv.MapIndex(key).Interface(), depth+1)
		}

	case reflect.Slice, reflect.Array:
		if isTextual(rv.Type()) {
			return 0
		}
		for i := 0; i < rv.Len(); i++ {
			found += h.extract(ctx, meta, rv.Index(i).Interface(), depth+1)
		}

	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			f := rv.Field(i)
			// Unexported fields are unreadable; skip them rather than
			// escalate.
			if !f.CanInterface() {
				continue
			}
			found += h.extract(ctx, meta, f.Interface(), depth+1)
		}
	}
	return found
}

// asMessage recognizes a message leaf. A non-pointer message yields an
// addressable copy, since identity assignment mutates the emitted object.
func asMessage(v any) (*message.Message, bool) {
	switch m := v.(type) {
	case *message.Message:
		return m, m != nil
	case message.Message:
		return &m, true
	}
	return nil, false
}

// sortedMapKeys returns the map's keys, ordered deterministically when the
// keys are strings. Go maps do not preserve insertion order, so sorting keeps
// emission order stable across runs.
func sortedMapKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	if rv.Type().Key().Kind() == reflect.String {
		sort.Slice(keys, func(i, j int) bool {
			return keys[i].String() < keys[j].String()
		})
	}
	return keys
}

// isTextual reports whether a sequence type is text-like (byte slices and
// arrays). Strings are not sequences in Go's type system, so they never reach
// traversal at all.
func isTextual(t reflect.Type) bool {
	return t.Elem().Kind() == reflect.Uint8
}

// forEachSequenceItem calls fn for every element of a non-text slice or
// array, and does nothing for any other value.
func forEachSequenceItem(v any, fn func(item any)) {
	if v == nil {
		return
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return
	}
	if isTextual(rv.Type()) {
		return
	}
	for i := 0; i < rv.Len(); i++ {
		fn(rv.Index(i).Interface())
	}
}
