package command

import (
	"fmt"

	"github.com/wagiedev/webostv-go/internal/errors"
)

// Args carries the call-time arguments of a command invocation.
type Args struct {
	Positional []any
	Named      map[string]any
}

// Positional builds Args from positional values only.
func Positional(vals ...any) Args {
	return Args{Positional: vals}
}

// ArgRef marks a payload template field that is resolved against the
// call-time arguments: either a positional index or a named key, with an
// optional default and post-processing function.
type ArgRef struct {
	index      int
	key        string
	named      bool
	def        any
	hasDefault bool
	post       func(any) any
}

// Arg references the positional argument at index.
func Arg(index int) *ArgRef {
	return &ArgRef{index: index}
}

// Named references the named argument under key.
func Named(key string) *ArgRef {
	return &ArgRef{key: key, named: true}
}

// Default makes the reference optional, substituting v when the argument
// is absent. The default bypasses post-processing.
func (r *ArgRef) Default(v any) *ArgRef {
	r.def = v
	r.hasDefault = true

	return r
}

// Post applies fn to the extracted value before it enters the payload.
func (r *ArgRef) Post(fn func(any) any) *ArgRef {
	r.post = fn

	return r
}

func (r *ArgRef) resolve(args Args) (any, error) {
	var (
		val any
		ok  bool
	)

	if r.named {
		val, ok = args.Named[r.key]
	} else if r.index >= 0 && r.index < len(args.Positional) {
		val, ok = args.Positional[r.index], true
	}

	if !ok {
		if r.hasDefault {
			return r.def, nil
		}

		if r.named {
			return nil, fmt.Errorf("%w: %q", errors.ErrMissingArgument, r.key)
		}

		return nil, fmt.Errorf("%w: position %d", errors.ErrMissingArgument, r.index)
	}

	if r.post != nil {
		val = r.post(val)
	}

	return val, nil
}

// ResolvePayload walks a payload template once, substituting every ArgRef
// with its call-time value. Maps and slices are copied, never mutated, so
// descriptor templates stay reusable across calls.
func ResolvePayload(template any, args Args) (any, error) {
	switch tmpl := template.(type) {
	case nil:
		return nil, nil

	case *ArgRef:
		return tmpl.resolve(args)

	case map[string]any:
		resolved := make(map[string]any, len(tmpl))

		for k, v := range tmpl {
			rv, err := ResolvePayload(v, args)
			if err != nil {
				return nil, err
			}

			resolved[k] = rv
		}

		return resolved, nil

	case []any:
		resolved := make([]any, len(tmpl))

		for i, v := range tmpl {
			rv, err := ResolvePayload(v, args)
			if err != nil {
				return nil, err
			}

			resolved[i] = rv
		}

		return resolved, nil

	default:
		return template, nil
	}
}

// resolvePayloadObject resolves a template that must produce a JSON object
// (or nothing), the shape the service bus expects for request payloads.
func resolvePayloadObject(template any, args Args) (map[string]any, error) {
	resolved, err := ResolvePayload(template, args)
	if err != nil {
		return nil, err
	}

	if resolved == nil {
		return nil, nil
	}

	obj, ok := resolved.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("payload must resolve to an object, got %T", resolved)
	}

	return obj, nil
}
