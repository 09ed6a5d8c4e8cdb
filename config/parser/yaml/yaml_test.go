package yaml

import (
	"strings"
	"testing"

	"github.com/gmprocess/gmconf/config"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Decode_Mapping(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
name: test-app
version: "1.0"
`)

	value, err := parser.Decode(data)

	require.NoError(t, err)
	require.True(t, value.IsMapping())
	assert.Equal(t, map[string]any{"name": "test-app", "version": "1.0"}, value.Interface())
}

func TestParser_Decode_KeepsKeyOrder(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
zeta: 1
alpha: 2
mid:
  second: true
  first: false
`)

	value, err := parser.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, value.Keys())

	nested, ok := value.Get("mid")
	require.True(t, ok)
	assert.Equal(t, []string{"second", "first"}, nested.Keys())
}

func TestParser_Decode_ScalarTypes(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
config:
  port: 8080
  ratio: 3.14159
  enabled: true
  name: station
  nothing: null
`)

	value, err := parser.Decode(data)
	require.NoError(t, err)

	port, ok := value.Lookup("config", "port")
	require.True(t, ok)
	assert.Equal(t, int64(8080), port.Scalar())

	ratio, ok := value.Lookup("config", "ratio")
	require.True(t, ok)
	assert.InDelta(t, 3.14159, ratio.Scalar(), 0.00001)

	enabled, ok := value.Lookup("config", "enabled")
	require.True(t, ok)
	assert.Equal(t, true, enabled.Scalar())

	name, ok := value.Lookup("config", "name")
	require.True(t, ok)
	assert.Equal(t, "station", name.Scalar())

	nothing, ok := value.Lookup("config", "nothing")
	require.True(t, ok)
	assert.True(t, nothing.IsNull())
}

func TestParser_Decode_Sequence(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
config:
  hosts:
    - host1.example.com
    - host2.example.com
    - name: host3
      port: 22
`)

	value, err := parser.Decode(data)
	require.NoError(t, err)

	hosts, ok := value.Lookup("config", "hosts")
	require.True(t, ok)
	require.Equal(t, config.KindSequence, hosts.Kind())

	items := hosts.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "host1.example.com", items[0].Scalar())
	assert.True(t, items[2].IsMapping())
	assert.Equal(t, []string{"name", "port"}, items[2].Keys())
}

func TestParser_Decode_NonStringKeys(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	value, err := parser.Decode([]byte("1: one\ntrue: yes-key\n"))
	require.NoError(t, err)

	one, ok := value.Get("1")
	require.True(t, ok)
	assert.Equal(t, "one", one.Scalar())

	_, ok = value.Get("true")
	assert.True(t, ok)
}

func TestParser_Decode_EmptyData(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	value, err := parser.Decode([]byte{})

	require.NoError(t, err)
	assert.True(t, value.IsNull())
}

func TestParser_Decode_InvalidYAML(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
invalid: yaml: content: [
`)

	_, err := parser.Decode(data)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal error")
}

func TestParser_Decode_ErrorShowsSourceOnce(t *testing.T) {
	t.Parallel()

	_, err := NewParser().Decode([]byte("windows:\n  signal_end: [velocity\n"))

	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(err.Error(), "signal_end"), err.Error())
}

func TestParser_Decode_DuplicateKeys(t *testing.T) {
	t.Parallel()

	_, err := NewParser().Decode([]byte("pickers:\n  combine: mean\n  combine: median\n"))

	require.Error(t, err)

	var duplicate *yaml.DuplicateKeyError
	require.ErrorAs(t, err, &duplicate)
	assert.Contains(t, err.Error(), `mapping key "combine" already defined`)
}

func TestParser_Decode_InvalidUTF8(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	_, err := parser.Decode([]byte("key: \xff\xfe"))

	require.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestParser_Decode_StripsByteOrderMark(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	value, err := parser.Decode([]byte("\xef\xbb\xbfkey: value\n"))
	require.NoError(t, err)

	_, ok := value.Get("key")
	assert.True(t, ok)
}

func TestParser_Encode_KeepsKeyOrder(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	value := config.NewMapping()
	value.Set("zeta", config.Int(1))
	value.Set("alpha", config.String("two"))

	data, err := parser.Encode(value)

	require.NoError(t, err)
	assert.Equal(t, "zeta: 1\nalpha: two\n", string(data))
}

func TestParser_EncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
processing:
  window: 30
  steps:
    - detrend
    - taper
pickers:
  method: ar
`)

	value, err := parser.Decode(data)
	require.NoError(t, err)

	encoded, err := parser.Encode(value)
	require.NoError(t, err)

	decoded, err := parser.Decode(encoded)
	require.NoError(t, err)

	assert.True(t, value.Equal(decoded))
	assert.Equal(t, value.Keys(), decoded.Keys())
}

func TestKeyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			name:     "string key",
			input:    "key",
			expected: "key",
		},
		{
			name:     "integer key",
			input:    uint64(10),
			expected: "10",
		},
		{
			name:     "null key",
			input:    nil,
			expected: "null",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, keyString(tt.input))
		})
	}
}
