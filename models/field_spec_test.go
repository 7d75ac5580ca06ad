package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── UnmarshalJSON ─────────────────────────────────────────────────────────────

func TestFieldSpec_UnmarshalJSON_AllKeys(t *testing.T) {
	data := []byte(`{"name":"cluster_port","type":"int","default":"4040","help":"port to bind","short":"-p"}`)

	var spec FieldSpec
	require.NoError(t, json.Unmarshal(data, &spec))

	assert.Equal(t, "cluster_port", spec.Name)
	assert.Equal(t, TypeInt, spec.Type)
	assert.True(t, spec.HasDefault)
	assert.Equal(t, "4040", spec.Default)
	assert.Equal(t, map[string]any{"help": "port to bind", "short": "-p"}, spec.Extra)
	assert.Equal(t, "port to bind", spec.Help())
	assert.Equal(t, "p", spec.Short())
}

func TestFieldSpec_UnmarshalJSON_NoDefault(t *testing.T) {
	var spec FieldSpec
	require.NoError(t, json.Unmarshal([]byte(`{"name":"p","type":"int"}`), &spec))

	assert.False(t, spec.HasDefault)
	assert.Nil(t, spec.Default)
	assert.Nil(t, spec.Extra)
}

func TestFieldSpec_UnmarshalJSON_NullDefault(t *testing.T) {
	var spec FieldSpec
	require.NoError(t, json.Unmarshal([]byte(`{"name":"p","default":null}`), &spec))

	assert.True(t, spec.HasDefault)
	assert.Nil(t, spec.Default)
}

func TestFieldSpec_UnmarshalJSON_LiteralDefaults(t *testing.T) {
	tests := []struct {
		name string
		json string
		want any
	}{
		{name: "integer", json: `{"name":"a","default":7}`, want: 7},
		{name: "float", json: `{"name":"a","default":1.5}`, want: 1.5},
		{name: "bool", json: `{"name":"a","default":true}`, want: true},
		{name: "list", json: `{"name":"a","default":[1,"x"]}`, want: []any{1, "x"}},
		{name: "dict", json: `{"name":"a","default":{"k":2}}`, want: map[string]any{"k": 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spec FieldSpec
			require.NoError(t, json.Unmarshal([]byte(tt.json), &spec))
			assert.Equal(t, tt.want, spec.Default)
		})
	}
}

func TestFieldSpec_UnmarshalJSON_BadType(t *testing.T) {
	var spec FieldSpec
	err := json.Unmarshal([]byte(`{"name":"p","type":5}`), &spec)
	require.Error(t, err)
}

func TestFieldSpec_UnmarshalJSON_NotAnObject(t *testing.T) {
	var spec FieldSpec
	err := json.Unmarshal([]byte(`["p"]`), &spec)
	require.Error(t, err)
}

// ── MarshalJSON ───────────────────────────────────────────────────────────────

func TestFieldSpec_MarshalJSON_RoundTrip(t *testing.T) {
	in := FieldSpec{
		Name:       "hosts",
		Type:       TypeList,
		Default:    "[1,2,3]",
		HasDefault: true,
		Extra:      map[string]any{"help": "peer hosts"},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out FieldSpec
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestFieldSpec_MarshalJSON_OmitsMissingDefault(t *testing.T) {
	data, err := json.Marshal(FieldSpec{Name: "p"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"p"}`, string(data))
}

// ── Clone ─────────────────────────────────────────────────────────────────────

func TestFieldSpec_Clone_IsDeep(t *testing.T) {
	orig := FieldSpec{
		Name:       "p",
		Default:    []any{1, 2},
		HasDefault: true,
		Extra:      map[string]any{"help": "x"},
	}

	clone := orig.Clone()
	clone.Default.([]any)[0] = 99
	clone.Extra["help"] = "changed"

	assert.Equal(t, []any{1, 2}, orig.Default)
	assert.Equal(t, "x", orig.Extra["help"])
}

// ── Short ─────────────────────────────────────────────────────────────────────

func TestFieldSpec_Short(t *testing.T) {
	tests := []struct {
		name  string
		extra map[string]any
		want  string
	}{
		{name: "missing", extra: nil, want: ""},
		{name: "plain letter", extra: map[string]any{"short": "v"}, want: "v"},
		{name: "dashed letter", extra: map[string]any{"short": "-v"}, want: "v"},
		{name: "too long", extra: map[string]any{"short": "-vv"}, want: ""},
		{name: "not a string", extra: map[string]any{"short": 1}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldSpec{Name: "f", Extra: tt.extra}.Short())
		})
	}
}

// ── FieldType ─────────────────────────────────────────────────────────────────

func TestFieldType_Valid(t *testing.T) {
	for _, ft := range FieldTypes {
		assert.True(t, ft.Valid(), ft)
	}
	assert.True(t, FieldType("").Valid())
	assert.False(t, FieldType("tuple").Valid())
}

func TestFieldType_MultiValue(t *testing.T) {
	assert.True(t, TypeList.MultiValue())
	assert.True(t, TypeDict.MultiValue())
	assert.False(t, TypeInt.MultiValue())
	assert.False(t, FieldType("").MultiValue())
}
