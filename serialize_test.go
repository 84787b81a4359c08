package modelkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	modelkit "github.com/openapimodels/modelkit"
)

func TestSerializeJSONIsDeterministic(t *testing.T) {
	reg := newTestRegistry()
	cfg := reg.MustNew("deviceConfig")
	mustSet(t, cfg, "name", "eth0")
	mustSet(t, cfg, "ip", "10.0.0.1")

	out, err := cfg.SerializeJSON()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"ip\": \"10.0.0.1\",\n  \"name\": \"eth0\"\n}", out,
		"2-space indent, keys sorted")
}

func TestSerializeYAML(t *testing.T) {
	reg := newTestRegistry()
	cfg := reg.MustNew("deviceConfig")
	mustSet(t, cfg, "name", "eth0")
	mustSet(t, cfg, "txBytes", int64(9007199254740993))

	out, err := cfg.SerializeYAML()
	require.NoError(t, err)
	assert.Contains(t, out, "name: eth0")
	// The wire string must stay a string in YAML output too.
	assert.Contains(t, out, `txBytes: "9007199254740993"`)
}

func TestSerializeUnsupportedEncoding(t *testing.T) {
	cfg := newTestRegistry().MustNew("deviceConfig")
	mustSet(t, cfg, "name", "eth0")

	_, err := cfg.Serialize(modelkit.Encoding("xml"))
	var ue *modelkit.UnsupportedEncodingError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, modelkit.Encoding("xml"), ue.Encoding)
}

func TestDeserializeAcceptsYAMLText(t *testing.T) {
	reg := newTestRegistry()
	back, err := reg.MustNew("deviceConfig").Deserialize("name: eth0\nip: 10.0.0.1\n")
	require.NoError(t, err)
	v, _, err := back.Get("ip")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", v)
}

func TestDeserializeParserErrorPropagates(t *testing.T) {
	reg := newTestRegistry()
	_, err := reg.MustNew("deviceConfig").Deserialize("{not json")
	require.Error(t, err)
	_, ok := modelkit.AsValidation(err)
	assert.False(t, ok, "malformed text is a parser error, not a validation error")
}

func TestCloneSharesNoState(t *testing.T) {
	reg := newTestRegistry()
	cfg := buildFullConfig(t, reg)

	clone, err := cfg.Clone()
	require.NoError(t, err)
	require.True(t, cfg.Equal(clone))

	// Mutate the clone's nested pattern; the original must not move.
	pattern, err := clone.GetOrInit("pattern")
	require.NoError(t, err)
	require.NoError(t, pattern.(*modelkit.Object).SetChoice("fixed"))

	orig, err := cfg.GetOrInit("pattern")
	require.NoError(t, err)
	active, _ := orig.(*modelkit.Object).ActiveChoice()
	assert.Equal(t, "increment", active, "clone mutations must not leak back")
	assert.False(t, cfg.Equal(clone))
}

func TestStringRendersYAML(t *testing.T) {
	reg := newTestRegistry()
	cfg := reg.MustNew("deviceConfig")
	mustSet(t, cfg, "name", "eth0")
	assert.Contains(t, cfg.String(), "name: eth0")
}
