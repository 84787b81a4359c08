package modelkit

import "sort"

// Kind identifies the base type of a declared field.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindObject
	KindArray
)

// Format is an optional refinement of a field's base kind. Bespoke string
// formats (mac, ipv4, ...) carry their own acceptance rules; numeric formats
// select the checker and, for int64, the wire representation.
type Format string

const (
	FormatNone   Format = ""
	FormatMAC    Format = "mac"
	FormatIPv4   Format = "ipv4"
	FormatIPv6   Format = "ipv6"
	FormatHex    Format = "hex"
	FormatBinary Format = "binary"
	FormatInt32  Format = "int32"
	FormatInt64  Format = "int64"
	FormatDouble Format = "double"
)

// Field is one entry of a generated type's constraint table. It is read-only
// at runtime; the generator emits one table per type.
type Field struct {
	Kind   Kind
	Format Format

	// Enum restricts string fields (including choice discriminators) to a
	// fixed value set.
	Enum []string

	// Min/Max bound the value for numbers and the length for strings,
	// applied after the type check.
	Min *float64
	Max *float64

	// MinItems/MaxItems bound the length of array fields.
	MinItems *int
	MaxItems *int

	// ItemKind and ItemFormat describe the elements of array fields.
	ItemKind   Kind
	ItemFormat Format

	// TypeName names the nested generated type for object fields and for
	// arrays of objects. Resolved through the Registry.
	TypeName string
}

// Choice declares a group of mutually exclusive fields. At most one member
// holds a value at any time; the active member's name is stored under
// Property (conventionally "choice"), which must itself be declared as a
// string field with Enum == Members.
type Choice struct {
	Property string
	Members  []string
	// Default, when non-empty, names the member materialized when a fresh
	// instance of this type is produced by lazy defaulting.
	Default string
}

// Member reports whether name belongs to the group.
func (c *Choice) Member(name string) bool {
	if c == nil {
		return false
	}
	for _, m := range c.Members {
		if m == name {
			return true
		}
	}
	return false
}

// Descriptor is the per-generated-type schema metadata consumed by the
// runtime: required fields, constraint table, static defaults and the
// declared choice group. One Descriptor instance is shared read-only by
// every Object of its type.
type Descriptor struct {
	// TypeName is the registry key and the root segment of violation paths.
	TypeName string

	// Required lists required field names in declaration order.
	Required []string

	// Fields is the constraint table keyed by field name.
	Fields map[string]Field

	// Order fixes the field iteration order for validation and encoding.
	// When empty, sorted field names are used.
	Order []string

	// Defaults holds static default values keyed by field name.
	Defaults map[string]any

	// ChoiceGroup declares the type's oneof group, if any.
	ChoiceGroup *Choice
}

// fieldOrder returns the deterministic field iteration order.
func (d *Descriptor) fieldOrder() []string {
	if len(d.Order) > 0 {
		return d.Order
	}
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry maps type names to descriptors. Generated packages populate one
// in init code; decode resolves nested type names through it. A miss is a
// TypeResolutionError: the metadata and the registered types disagree.
type Registry struct {
	descriptors map[string]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: map[string]*Descriptor{}}
}

// Register adds d under d.TypeName, replacing any previous registration.
func (r *Registry) Register(d *Descriptor) {
	r.descriptors[d.TypeName] = d
}

// Resolve returns the descriptor registered under name.
func (r *Registry) Resolve(name string) (*Descriptor, error) {
	d, ok := r.descriptors[name]
	if !ok {
		return nil, &TypeResolutionError{TypeName: name}
	}
	return d, nil
}

// New constructs a fresh root Object of the named type.
func (r *Registry) New(name string) (*Object, error) {
	d, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return newObject(r, d, nil, ""), nil
}

// MustNew is New for registrations known at compile time; it panics on a
// resolution miss, which can only mean a generator bug.
func (r *Registry) MustNew(name string) *Object {
	o, err := r.New(name)
	if err != nil {
		panic(err)
	}
	return o
}
