package modelkit

import "fmt"

// Object is one instance of a generated type: a sparse property store driven
// by the type's Descriptor. Fields exist in the store only once explicitly
// set or materialized from a default; everything else is absent and omitted
// from encoded output.
//
// An Object holds a non-owning back-reference to its parent plus the choice
// field it occupies there. The link exists solely so that mutating a choice
// variant can record itself as the parent's active choice; it is never used
// for iteration or lifetime management. Ownership is strictly downward: a
// field holds its child exclusively, and replacing the field releases the
// prior child.
//
// Objects are not safe for concurrent use; callers serialize access to a
// graph externally.
type Object struct {
	reg  *Registry
	desc *Descriptor

	parent *Object
	// choiceField is the name of the parent's choice-group field this
	// object occupies, or "" when it does not sit in a choice slot.
	choiceField string

	props map[string]any

	// pending holds violations recorded by Set calls (enum mismatches).
	// They never raise at assignment time; the next validation walk drains
	// them into its aggregate.
	pending []Violation
}

func newObject(reg *Registry, desc *Descriptor, parent *Object, choiceField string) *Object {
	return &Object{
		reg:         reg,
		desc:        desc,
		parent:      parent,
		choiceField: choiceField,
		props:       map[string]any{},
	}
}

// Descriptor returns the schema metadata this object is bound to.
func (o *Object) Descriptor() *Descriptor { return o.desc }

// Parent returns the non-owning parent reference, or nil for a root object.
func (o *Object) Parent() *Object { return o.parent }

// Get returns the stored value for name without side effects. It reports
// false when the field was never set or defaulted. Reading a name absent
// from the schema metadata is a programming error and returns ErrUnknownField.
func (o *Object) Get(name string) (any, bool, error) {
	if _, ok := o.desc.Fields[name]; !ok {
		return nil, false, fmt.Errorf("%w: %s.%s", ErrUnknownField, o.desc.TypeName, name)
	}
	v, ok := o.props[name]
	if !ok || v == nil {
		return nil, false, nil
	}
	return v, true, nil
}

// GetOrInit returns the stored value for name, materializing it first when
// absent. This call mutates the store on first access:
//
//   - a field with a static default stores and returns that default;
//   - an object field constructs a child bound to this object (and to the
//     choice slot, when name is a choice member), stores it, and — when the
//     child type declares a default choice member — materializes that member
//     in turn, so a freshly defaulted subtree is already internally
//     consistent;
//   - an array-of-objects field constructs and stores an empty List.
//
// Callers that need a pure read use Get.
func (o *Object) GetOrInit(name string) (any, error) {
	f, ok := o.desc.Fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, o.desc.TypeName, name)
	}
	if v, ok := o.props[name]; ok && v != nil {
		return v, nil
	}
	switch {
	case f.Kind == KindObject:
		child, err := o.newChild(name, f.TypeName)
		if err != nil {
			return nil, err
		}
		o.applyChoice(name)
		o.props[name] = child
		if cd := child.desc.ChoiceGroup; cd != nil && cd.Default != "" {
			if _, err := child.GetOrInit(cd.Default); err != nil {
				return nil, err
			}
		}
		return child, nil
	case f.Kind == KindArray && f.TypeName != "":
		l := NewList(o.reg, f.TypeName, false)
		o.applyChoice(name)
		o.props[name] = l
		return l, nil
	default:
		if dv, ok := o.desc.Defaults[name]; ok {
			o.applyChoice(name)
			o.props[name] = dv
			return dv, nil
		}
		return nil, nil
	}
}

// Set stores value under name. A nil value reverts a field that has a static
// default back to that default; defaults cannot be explicitly unset. A value
// outside a declared enum records a violation for the next validation walk
// and stores nothing — assignment never raises for content problems.
//
// When name belongs to the declared choice group the write routes through
// the choice coordinator, evicting every sibling member. When this object
// itself occupies a choice slot of its parent, any non-nil set (including
// one whose value was rejected for enum membership) re-records this object's
// field as the active choice on the parent and, through the parent's own
// discriminator write, on every further ancestor.
func (o *Object) Set(name string, value any) error {
	f, ok := o.desc.Fields[name]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, o.desc.TypeName, name)
	}
	cg := o.desc.ChoiceGroup
	switch {
	case value == nil && o.hasDefault(name):
		o.applyChoice(name)
		o.props[name] = o.desc.Defaults[name]
	case cg != nil && name == cg.Property:
		// Direct write of the discriminator selects the variant.
		s, isStr := value.(string)
		if !isStr || !cg.Member(s) {
			o.pending = append(o.pending, Violation{
				Path:    o.desc.TypeName + "." + name,
				Message: fmt.Sprintf("%v is not a valid enum for property %s", value, name),
			})
			break
		}
		o.applyChoice(s)
	case !enumAllows(f.Enum, value):
		o.pending = append(o.pending, Violation{
			Path:    o.desc.TypeName + "." + name,
			Message: fmt.Sprintf("%v is not a valid enum for property %s", value, name),
		})
	default:
		o.applyChoice(name)
		o.props[name] = value
	}
	// The notification runs even when the write itself recorded a violation,
	// and routes through the parent's own discriminator Set so the cascade
	// re-records the active variant on every ancestor, not just one level up.
	if o.parent != nil && o.choiceField != "" && value != nil {
		if pcg := o.parent.desc.ChoiceGroup; pcg != nil {
			// The generator always declares the discriminator field, so the
			// write cannot miss the schema.
			_ = o.parent.Set(pcg.Property, o.choiceField)
		}
	}
	return nil
}

// SetChoice selects the named member of the declared choice group. The write
// is a destructive tagged-union replacement: every other member's stored
// value is evicted, not hidden, and name becomes the active choice.
func (o *Object) SetChoice(name string) error {
	if !o.HasChoice(name) {
		return fmt.Errorf("%w: %s is not a choice member of %s", ErrUnknownField, name, o.desc.TypeName)
	}
	o.applyChoice(name)
	return nil
}

// HasChoice reports whether name is a member of this type's choice group.
// It has no side effects.
func (o *Object) HasChoice(name string) bool {
	return o.desc.ChoiceGroup.Member(name)
}

// ActiveChoice returns the currently selected choice member, if any.
func (o *Object) ActiveChoice() (string, bool) {
	cg := o.desc.ChoiceGroup
	if cg == nil {
		return "", false
	}
	s, ok := o.props[cg.Property].(string)
	return s, ok && s != ""
}

// applyChoice records name as the active choice and evicts the stored value
// of every other member. A name outside the group is a no-op, so every Set
// can route through here unconditionally.
func (o *Object) applyChoice(name string) {
	cg := o.desc.ChoiceGroup
	if !cg.Member(name) {
		return
	}
	for _, m := range cg.Members {
		if m != name {
			delete(o.props, m)
		}
	}
	o.props[cg.Property] = name
}

func (o *Object) hasDefault(name string) bool {
	_, ok := o.desc.Defaults[name]
	return ok
}

func (o *Object) newChild(field, typeName string) (*Object, error) {
	cd, err := o.reg.Resolve(typeName)
	if err != nil {
		return nil, err
	}
	choiceField := ""
	if o.desc.ChoiceGroup.Member(field) {
		choiceField = field
	}
	return newObject(o.reg, cd, o, choiceField), nil
}

// enumAllows reports whether value is admissible for a field with the given
// enum. An empty enum admits everything; non-string values are deferred to
// the type checker rather than rejected here.
func enumAllows(enum []string, value any) bool {
	if len(enum) == 0 {
		return true
	}
	s, ok := value.(string)
	if !ok {
		return true
	}
	for _, e := range enum {
		if e == s {
			return true
		}
	}
	return false
}
