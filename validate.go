package modelkit

import (
	"fmt"
	"reflect"
)

// Validate walks the whole object graph depth-first and returns a single
// *ValidationError aggregating every violation found, or nil. Nested objects
// and containers are validated before the local field checks, all appending
// to one growing list in call order. The instance-scoped list of pending
// set-time violations is drained by the walk, so the object is reusable for
// a later pass regardless of the outcome.
func (o *Object) Validate() error {
	var vs []Violation
	o.validateInto(o.desc.TypeName, &vs)
	if len(vs) > 0 {
		return &ValidationError{Violations: vs}
	}
	return nil
}

// validateInto is the recursive body of Validate. It only appends; raising
// is reserved for the top-level entry points.
func (o *Object) validateInto(path string, vs *[]Violation) {
	*vs = append(*vs, o.pending...)
	o.pending = nil

	o.validateRequired(path, vs)

	for _, name := range o.desc.fieldOrder() {
		v, ok := o.props[name]
		if !ok || v == nil {
			continue
		}
		fieldPath := path + "." + name
		switch child := v.(type) {
		case *Object:
			child.validateInto(fieldPath, vs)
		case *List:
			for i, item := range child.items {
				item.validateInto(fmt.Sprintf("%s[%d]", fieldPath, i), vs)
			}
		}
		o.validateTypes(fieldPath, name, v, vs)
	}
}

// validateRequired checks every declared required field after attempting
// static default materialization.
func (o *Object) validateRequired(path string, vs *[]Violation) {
	for _, name := range o.desc.Required {
		if v, ok := o.props[name]; ok && v != nil {
			continue
		}
		if o.hasDefault(name) {
			if _, err := o.GetOrInit(name); err == nil {
				continue
			}
		}
		*vs = append(*vs, Violation{
			Path:    path + "." + name,
			Message: fmt.Sprintf("required field `%s.%s` must not be empty", path, name),
		})
	}
}

// validateTypes applies the constraint table entry for one present field.
func (o *Object) validateTypes(path, name string, v any, vs *[]Violation) {
	f, ok := o.desc.Fields[name]
	if !ok {
		return
	}
	if len(f.Enum) > 0 {
		if s, isStr := v.(string); isStr && !enumAllows(f.Enum, s) {
			*vs = append(*vs, Violation{
				Path:    path,
				Message: fmt.Sprintf("enum field `%s` must be one of %v, instead of `%v`", path, f.Enum, v),
			})
		}
	}
	switch f.Kind {
	case KindObject:
		co, isObj := v.(*Object)
		if !isObj || co.desc.TypeName != f.TypeName {
			*vs = append(*vs, Violation{
				Path:    path,
				Message: fmt.Sprintf("value of `%s` must be a valid %s type, instead of `%T`", path, f.TypeName, v),
			})
		}
	case KindArray:
		o.validateArray(path, f, v, vs)
	default:
		checkScalar(path, f.Kind, f.Format, v, f.Min, f.Max, vs)
	}
}

func (o *Object) validateArray(path string, f Field, v any, vs *[]Violation) {
	var length int
	if f.TypeName != "" {
		l, isList := v.(*List)
		if !isList || l.itemType != f.TypeName {
			*vs = append(*vs, Violation{
				Path:    path,
				Message: fmt.Sprintf("value of `%s` must be a list of %s, instead of `%T`", path, f.TypeName, v),
			})
			return
		}
		length = l.Len()
	} else {
		elems, isSlice := anySlice(v)
		if !isSlice {
			*vs = append(*vs, Violation{
				Path:    path,
				Message: fmt.Sprintf("value of `%s` must be a valid list type, instead of `%T`", path, v),
			})
			return
		}
		for i, el := range elems {
			checkScalar(fmt.Sprintf("%s[%d]", path, i), f.ItemKind, f.ItemFormat, el, f.Min, f.Max, vs)
		}
		length = len(elems)
	}
	if (f.MinItems != nil && length < *f.MinItems) || (f.MaxItems != nil && length > *f.MaxItems) {
		*vs = append(*vs, Violation{
			Path:    path,
			Message: fmt.Sprintf("length of `%s` must be in the range [%s, %s], instead of `%d`", path, itemBound(f.MinItems), itemBound(f.MaxItems), length),
		})
	}
}

// checkScalar dispatches the scalar checkers. A declared format supersedes
// the base kind check; min/max follow the type check for the kinds that
// carry bounds.
func checkScalar(path string, kind Kind, format Format, v any, min, max *float64, vs *[]Violation) {
	switch format {
	case FormatMAC:
		checkMAC(path, v, vs)
	case FormatIPv4:
		checkIPv4(path, v, vs)
	case FormatIPv6:
		checkIPv6(path, v, vs)
	case FormatHex:
		checkHex(path, v, vs)
	case FormatBinary:
		checkBinary(path, v, vs)
	case FormatInt32, FormatInt64:
		checkInteger(path, v, vs)
		checkBounds(path, v, min, max, vs)
	case FormatDouble:
		checkFloat(path, v, vs)
		checkBounds(path, v, min, max, vs)
	default:
		switch kind {
		case KindString:
			checkString(path, v, vs)
			checkBounds(path, v, min, max, vs)
		case KindInteger:
			checkInteger(path, v, vs)
			checkBounds(path, v, min, max, vs)
		case KindFloat:
			checkFloat(path, v, vs)
			checkBounds(path, v, min, max, vs)
		case KindBool:
			checkBool(path, v, vs)
		}
	}
}

func itemBound(b *int) string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("%d", *b)
}

// anySlice normalizes any slice value to []any. Callers may store typed
// slices ([]string, []int64, ...) as well as the []any produced by decode.
func anySlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
