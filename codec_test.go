package modelkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	modelkit "github.com/openapimodels/modelkit"
)

// buildFullConfig populates every constraint species the fixture family
// declares.
func buildFullConfig(t *testing.T, reg *modelkit.Registry) *modelkit.Object {
	t.Helper()
	cfg := reg.MustNew("deviceConfig")
	mustSet(t, cfg, "name", "eth0")
	mustSet(t, cfg, "mtu", 9000)
	mustSet(t, cfg, "mode", "trunk")
	mustSet(t, cfg, "mac", "aa:bb:cc:dd:ee:ff")
	mustSet(t, cfg, "ip", "10.0.0.1")
	mustSet(t, cfg, "gateway", "2001:db8::68")
	mustSet(t, cfg, "txBytes", int64(9007199254740993))
	mustSet(t, cfg, "counters", []any{int64(1), int64(9007199254740993)})
	mustSet(t, cfg, "tags", []any{"uplink", "lab"})

	holder := reg.MustNew("patternHolder")
	mustSet(t, cfg, "pattern", holder)
	inc, err := holder.GetOrInit("increment")
	require.NoError(t, err)
	mustSet(t, inc.(*modelkit.Object), "start", int64(4096))

	ports, err := cfg.GetOrInit("ports")
	require.NoError(t, err)
	for _, name := range []string{"p1", "p2"} {
		p := reg.MustNew("portConfig")
		mustSet(t, p, "name", name)
		require.NoError(t, ports.(*modelkit.List).Append(p))
	}
	return cfg
}

func TestRoundTripJSON(t *testing.T) {
	reg := newTestRegistry()
	cfg := buildFullConfig(t, reg)

	out, err := cfg.SerializeJSON()
	require.NoError(t, err)

	back, err := reg.MustNew("deviceConfig").Deserialize(out)
	require.NoError(t, err)

	out2, err := back.SerializeJSON()
	require.NoError(t, err)
	assert.Equal(t, out, out2, "decode(encode(x)) must reproduce x")
}

func TestRoundTripMap(t *testing.T) {
	reg := newTestRegistry()
	cfg := buildFullConfig(t, reg)

	doc, err := cfg.SerializeMap()
	require.NoError(t, err)

	back, err := reg.MustNew("deviceConfig").Deserialize(doc)
	require.NoError(t, err)
	assert.True(t, cfg.Equal(back), "map round trip must preserve the graph")

	// Nested choice selections and container order survive.
	doc2, err := back.SerializeMap()
	require.NoError(t, err)
	pattern := doc2["pattern"].(map[string]any)
	assert.Equal(t, "increment", pattern["choice"])
	ports := doc2["ports"].([]any)
	require.Len(t, ports, 2)
	assert.Equal(t, "p1", ports[0].(map[string]any)["name"])
	assert.Equal(t, "p2", ports[1].(map[string]any)["name"])
}

func TestInt64WireCoercion(t *testing.T) {
	reg := newTestRegistry()
	cfg := reg.MustNew("deviceConfig")
	mustSet(t, cfg, "name", "eth0")
	mustSet(t, cfg, "txBytes", int64(9007199254740993))
	mustSet(t, cfg, "counters", []any{int64(9007199254740993)})

	doc, err := cfg.SerializeMap()
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993", doc["txBytes"], "int64 scalars ride the wire as decimal strings")
	assert.Equal(t, []any{"9007199254740993"}, doc["counters"], "int64 array elements too")

	back, err := reg.MustNew("deviceConfig").Deserialize(doc)
	require.NoError(t, err)
	v, ok, err := back.Get("txBytes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(9007199254740993), v, "decode parses the wire string back bit-exact")
}

func TestSparseEncode(t *testing.T) {
	reg := newTestRegistry()
	cfg := reg.MustNew("deviceConfig")
	mustSet(t, cfg, "name", "eth0")
	mustSet(t, cfg, "ip", "10.0.0.1")

	doc, err := cfg.SerializeMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "eth0", "ip": "10.0.0.1"}, doc,
		"fields never set and never defaulted are omitted entirely")
}

func TestEncodeRejectsInvalidGraph(t *testing.T) {
	cfg := newTestRegistry().MustNew("deviceConfig")
	// Required name left unset.
	_, err := cfg.SerializeJSON()
	_, ok := modelkit.AsValidation(err)
	require.True(t, ok, "encode must validate first, got %v", err)
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	reg := newTestRegistry()
	back, err := reg.MustNew("deviceConfig").Deserialize(map[string]any{
		"name":        "eth0",
		"undeclared":  "zzz",
		"alsoUnknown": 42,
	})
	require.NoError(t, err)
	doc, err := back.SerializeMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "eth0"}, doc)
}

func TestDecodeNullMaterializesDefault(t *testing.T) {
	reg := newTestRegistry()
	back, err := reg.MustNew("deviceConfig").Deserialize(map[string]any{
		"name": "eth0",
		"mtu":  nil,
	})
	require.NoError(t, err)
	v, ok, err := back.Get("mtu")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1500, v)
}

func TestDecodeRecordsChoice(t *testing.T) {
	reg := newTestRegistry()
	holder, err := reg.MustNew("patternHolder").Deserialize(map[string]any{
		"fixed": "ff",
	})
	require.NoError(t, err)
	active, ok := holder.ActiveChoice()
	require.True(t, ok)
	assert.Equal(t, "fixed", active)
}

func TestDecodeValidates(t *testing.T) {
	reg := newTestRegistry()
	_, err := reg.MustNew("deviceConfig").Deserialize(map[string]any{
		"name": "eth0",
		"mac":  "aa:bb:cc",
	})
	ve, ok := modelkit.AsValidation(err)
	require.True(t, ok, "decode must run full validation, got %v", err)
	require.Len(t, ve.Violations, 1)
	assert.Contains(t, ve.Violations[0].Message, "mac")
}

func TestDecodeUnresolvableTypeIsFatal(t *testing.T) {
	reg := modelkit.NewRegistry()
	reg.Register(&modelkit.Descriptor{
		TypeName: "broken",
		Fields: map[string]modelkit.Field{
			"child": {Kind: modelkit.KindObject, TypeName: "ghost"},
		},
	})
	_, err := reg.MustNew("broken").Deserialize(map[string]any{
		"child": map[string]any{},
	})
	var tre *modelkit.TypeResolutionError
	require.ErrorAs(t, err, &tre)
	assert.Equal(t, "ghost", tre.TypeName)
}
