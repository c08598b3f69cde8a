package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/wagiedev/webostv-go/internal/errors"
)

func TestResolvePayload_Literals(t *testing.T) {
	template := map[string]any{"text": "hello", "replace": 0}

	resolved, err := ResolvePayload(template, Args{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"text": "hello", "replace": 0}, resolved)
}

func TestResolvePayload_PositionalArg(t *testing.T) {
	template := map[string]any{"volume": Arg(0)}

	resolved, err := ResolvePayload(template, Positional(25))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"volume": 25}, resolved)
}

func TestResolvePayload_MissingPositional(t *testing.T) {
	template := map[string]any{"volume": Arg(0)}

	_, err := ResolvePayload(template, Args{})
	require.ErrorIs(t, err, sdkerrors.ErrMissingArgument)
}

func TestResolvePayload_NamedWithDefault(t *testing.T) {
	template := map[string]any{
		"id":        Arg(0),
		"contentId": Named("content_id").Default(nil),
	}

	// Named argument present.
	resolved, err := ResolvePayload(template, Args{
		Positional: []any{"netflix"},
		Named:      map[string]any{"content_id": "m-123"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "netflix", "contentId": "m-123"}, resolved)

	// Named argument absent: the default is substituted.
	resolved, err = ResolvePayload(template, Positional("netflix"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "netflix", "contentId": nil}, resolved)
}

func TestResolvePayload_MissingNamed(t *testing.T) {
	_, err := ResolvePayload(map[string]any{"x": Named("required_key")}, Args{})
	require.ErrorIs(t, err, sdkerrors.ErrMissingArgument)
	assert.Contains(t, err.Error(), "required_key")
}

func TestResolvePayload_PostProcessing(t *testing.T) {
	template := map[string]any{
		"button": Arg(0).Post(func(v any) any {
			s, _ := v.(string)

			return strings.ToUpper(s)
		}),
	}

	resolved, err := ResolvePayload(template, Positional("home"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"button": "HOME"}, resolved)
}

func TestResolvePayload_DefaultBypassesPost(t *testing.T) {
	ref := Named("n").Default("fallback").Post(func(any) any { return "transformed" })

	resolved, err := ResolvePayload(ref, Args{})
	require.NoError(t, err)
	assert.Equal(t, "fallback", resolved)
}

func TestResolvePayload_TopLevelRef(t *testing.T) {
	// Templates like SetChannel pass the whole first argument through.
	resolved, err := ResolvePayload(Arg(0), Positional(map[string]any{"channelId": "7"}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"channelId": "7"}, resolved)
}

func TestResolvePayload_Nested(t *testing.T) {
	template := map[string]any{
		"outer": map[string]any{"inner": Arg(1)},
		"list":  []any{Arg(0), "static"},
	}

	resolved, err := ResolvePayload(template, Positional("first", "second"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"outer": map[string]any{"inner": "second"},
		"list":  []any{"first", "static"},
	}, resolved)
}

func TestResolvePayload_DoesNotMutateTemplate(t *testing.T) {
	template := map[string]any{"volume": Arg(0)}

	_, err := ResolvePayload(template, Positional(10))
	require.NoError(t, err)

	// The descriptor template keeps its ArgRef for the next call.
	_, isRef := template["volume"].(*ArgRef)
	assert.True(t, isRef)
}

func TestResolvePayloadObject_RejectsScalar(t *testing.T) {
	_, err := resolvePayloadObject(Arg(0), Positional(42))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object")
}

func TestResolvePayloadObject_NilTemplate(t *testing.T) {
	obj, err := resolvePayloadObject(nil, Args{})
	require.NoError(t, err)
	assert.Nil(t, obj)
}
