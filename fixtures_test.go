package modelkit_test

import (
	modelkit "github.com/openapimodels/modelkit"
)

func f64(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }

// newTestRegistry mirrors what a generated package emits: one descriptor per
// schema type plus the registry wiring. The type family is a cut-down
// traffic-device configuration with every constraint species the runtime
// handles: required fields, static defaults, bespoke string formats, int64
// wire coercion, a choice group with a default member, nested objects and
// object lists.
func newTestRegistry() *modelkit.Registry {
	reg := modelkit.NewRegistry()

	reg.Register(&modelkit.Descriptor{
		TypeName: "deviceConfig",
		Required: []string{"name"},
		Order: []string{
			"name", "mtu", "mode", "mac", "ip", "gateway", "nodeId",
			"maskBits", "txBytes", "counters", "tags", "pattern", "ports",
		},
		Fields: map[string]modelkit.Field{
			"name":     {Kind: modelkit.KindString},
			"mtu":      {Kind: modelkit.KindInteger, Format: modelkit.FormatInt32, Min: f64(64), Max: f64(9000)},
			"mode":     {Kind: modelkit.KindString, Enum: []string{"access", "trunk"}},
			"mac":      {Kind: modelkit.KindString, Format: modelkit.FormatMAC},
			"ip":       {Kind: modelkit.KindString, Format: modelkit.FormatIPv4},
			"gateway":  {Kind: modelkit.KindString, Format: modelkit.FormatIPv6},
			"nodeId":   {Kind: modelkit.KindString, Format: modelkit.FormatHex},
			"maskBits": {Kind: modelkit.KindString, Format: modelkit.FormatBinary},
			"txBytes":  {Kind: modelkit.KindInteger, Format: modelkit.FormatInt64},
			"counters": {Kind: modelkit.KindArray, ItemKind: modelkit.KindInteger, ItemFormat: modelkit.FormatInt64},
			"tags":     {Kind: modelkit.KindArray, ItemKind: modelkit.KindString, Min: f64(1), Max: f64(16), MaxItems: iptr(4)},
			"pattern":  {Kind: modelkit.KindObject, TypeName: "patternHolder"},
			"ports":    {Kind: modelkit.KindArray, TypeName: "portConfig"},
		},
		Defaults: map[string]any{
			"mtu":  1500,
			"mode": "access",
		},
	})

	reg.Register(&modelkit.Descriptor{
		TypeName: "patternHolder",
		Order:    []string{"choice", "fixed", "increment"},
		Fields: map[string]modelkit.Field{
			"choice":    {Kind: modelkit.KindString, Enum: []string{"fixed", "increment"}},
			"fixed":     {Kind: modelkit.KindString, Format: modelkit.FormatHex},
			"increment": {Kind: modelkit.KindObject, TypeName: "incrementPattern"},
		},
		Defaults: map[string]any{
			"fixed": "00",
		},
		ChoiceGroup: &modelkit.Choice{
			Property: "choice",
			Members:  []string{"fixed", "increment"},
			Default:  "fixed",
		},
	})

	reg.Register(&modelkit.Descriptor{
		TypeName: "incrementPattern",
		Required: []string{"start"},
		Order:    []string{"start", "step"},
		Fields: map[string]modelkit.Field{
			"start": {Kind: modelkit.KindInteger, Format: modelkit.FormatInt64},
			"step":  {Kind: modelkit.KindInteger, Min: f64(1)},
		},
		Defaults: map[string]any{
			"step": 1,
		},
	})

	reg.Register(&modelkit.Descriptor{
		TypeName: "portConfig",
		Required: []string{"name"},
		Order:    []string{"name", "speed"},
		Fields: map[string]modelkit.Field{
			"name":  {Kind: modelkit.KindString},
			"speed": {Kind: modelkit.KindString, Enum: []string{"speed_1g", "speed_10g"}},
		},
		Defaults: map[string]any{
			"speed": "speed_1g",
		},
	})

	return reg
}

// mustSet is a test helper for writes that cannot fail on declared fields.
func mustSet(t interface{ Fatalf(string, ...any) }, o *modelkit.Object, name string, v any) {
	if err := o.Set(name, v); err != nil {
		t.Fatalf("Set(%s): %v", name, err)
	}
}
