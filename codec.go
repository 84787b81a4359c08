package modelkit

import (
	"fmt"
	"strconv"
)

// encode converts the object graph to its canonical document: a tree of
// maps, sequences and scalars shared by every serialization format. The full
// graph is validated first; violations abort the encode.
func (o *Object) encode() (map[string]any, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o.encodeDoc(), nil
}

// encodeDoc emits stored fields only, so output stays sparse: fields never
// set and never defaulted are omitted entirely. Any field of int64 format is
// rendered as a decimal-digit string (per element for arrays) so document
// formats with float-backed numbers cannot lose precision.
func (o *Object) encodeDoc() map[string]any {
	out := make(map[string]any, len(o.props))
	for _, name := range o.desc.fieldOrder() {
		v, ok := o.props[name]
		if !ok || v == nil {
			continue
		}
		f := o.desc.Fields[name]
		switch t := v.(type) {
		case *Object:
			out[name] = t.encodeDoc()
		case *List:
			out[name] = t.encodeDoc()
		default:
			if f.Format == FormatInt64 {
				if n, isNum := numericAsInt64(v); isNum {
					out[name] = strconv.FormatInt(n, 10)
					continue
				}
			}
			if f.Kind == KindArray {
				if elems, isSlice := anySlice(v); isSlice {
					fresh := make([]any, len(elems))
					for i, el := range elems {
						if f.ItemFormat == FormatInt64 {
							if n, isNum := numericAsInt64(el); isNum {
								fresh[i] = strconv.FormatInt(n, 10)
								continue
							}
						}
						fresh[i] = el
					}
					out[name] = fresh
					continue
				}
			}
			out[name] = v
		}
	}
	return out
}

// decode populates the object from a canonical document and validates the
// result. Only keys declared in the schema metadata are applied; everything
// else in the input is ignored.
func (o *Object) decode(doc map[string]any) error {
	if err := o.decodeDoc(doc); err != nil {
		return err
	}
	return o.Validate()
}

func (o *Object) decodeDoc(doc map[string]any) error {
	for _, name := range o.desc.fieldOrder() {
		raw, present := doc[name]
		if !present {
			continue
		}
		f := o.desc.Fields[name]
		value := raw
		switch {
		case raw == nil:
			// An explicit null materializes the static default when one
			// exists; defaults cannot be nulled out from the wire.
			if o.hasDefault(name) {
				value = o.desc.Defaults[name]
			}
		case f.Kind == KindObject:
			m, isMap := raw.(map[string]any)
			if !isMap {
				break // stored as-is; the validator reports the type mismatch
			}
			child, err := o.newChild(name, f.TypeName)
			if err != nil {
				return err
			}
			if err := child.decodeDoc(m); err != nil {
				return err
			}
			value = child
		case f.Kind == KindArray && f.TypeName != "":
			seq, isSeq := raw.([]any)
			if !isSeq {
				break
			}
			l := NewList(o.reg, f.TypeName, false)
			for _, el := range seq {
				m, isMap := el.(map[string]any)
				if !isMap {
					return fmt.Errorf("modelkit: %s.%s: array of %s holds a non-object element", o.desc.TypeName, name, f.TypeName)
				}
				item, err := o.reg.New(f.TypeName)
				if err != nil {
					return err
				}
				if err := item.decodeDoc(m); err != nil {
					return err
				}
				l.items = append(l.items, item)
			}
			value = l
		case f.Format == FormatInt64:
			if n, err := parseInt64Wire(raw); err == nil {
				value = n
			}
		case f.Kind == KindArray && f.ItemFormat == FormatInt64:
			seq, isSeq := raw.([]any)
			if !isSeq {
				break
			}
			parsed := make([]any, len(seq))
			for i, el := range seq {
				if n, err := parseInt64Wire(el); err == nil {
					parsed[i] = n
				} else {
					parsed[i] = el
				}
			}
			value = parsed
		}
		o.applyChoice(name)
		o.props[name] = value
	}
	return nil
}

// parseInt64Wire reverses the int64 wire coercion: decimal strings parse
// back to integers, and native numbers pass through for inputs that never
// went through our encoder.
func parseInt64Wire(v any) (int64, error) {
	switch t := v.(type) {
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		if n, ok := numericAsInt64(v); ok {
			return n, nil
		}
		return 0, fmt.Errorf("modelkit: %T is not an int64 wire value", v)
	}
}
