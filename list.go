package modelkit

import "fmt"

// List is an ordered collection of same-family Objects: the runtime shape of
// an array-of-objects field. Items are type-checked against the declared
// item type on the way in.
//
// A List never carries traversal state of its own; every traversal owns an
// Iterator, so nested or interleaved walks over one container cannot
// interfere with each other.
type List struct {
	reg      *Registry
	itemType string
	// unwrapChoice makes index and name access return the active-choice
	// payload of the found item instead of the wrapper, flattening one
	// level of union wrapping for callers.
	unwrapChoice bool
	items        []*Object
}

// NewList constructs an empty container for items of the named generated
// type. With unwrapChoice set, item access returns the active choice payload
// of choice-governed items rather than the item itself.
func NewList(reg *Registry, itemType string, unwrapChoice bool) *List {
	return &List{reg: reg, itemType: itemType, unwrapChoice: unwrapChoice}
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// Item returns the item at index i, unwrapped when the container is
// choice-unwrapping. Negative indices count from the end.
func (l *List) Item(i int) (any, error) {
	idx := i
	if idx < 0 {
		idx += len(l.items)
	}
	if idx < 0 || idx >= len(l.items) {
		return nil, fmt.Errorf("%w: %d with length %d", ErrOutOfRange, i, len(l.items))
	}
	return l.unwrap(l.items[idx]), nil
}

// ByName returns the first item whose "name" property equals name,
// unwrapped when the container is choice-unwrapping.
func (l *List) ByName(name string) (any, error) {
	for _, item := range l.items {
		if n, _ := item.props["name"].(string); n == name {
			return l.unwrap(item), nil
		}
	}
	return nil, fmt.Errorf("%w: no item named %q", ErrOutOfRange, name)
}

// Slice returns a new container of the same configuration over the
// [start, stop) sub-range with the given stride, backed by fresh storage:
// appends to either list never show through the other. Negative start/stop
// count from the end; a negative step walks backwards, as the conventional
// slice semantics go.
func (l *List) Slice(start, stop, step int) (*List, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: slice step cannot be zero", ErrOutOfRange)
	}
	n := len(l.items)
	lo, hi := clampIndex(start, n, step), clampIndex(stop, n, step)
	out := NewList(l.reg, l.itemType, l.unwrapChoice)
	if step > 0 {
		for i := lo; i < hi; i += step {
			out.items = append(out.items, l.items[i])
		}
	} else {
		for i := lo; i > hi; i += step {
			out.items = append(out.items, l.items[i])
		}
	}
	return out, nil
}

// clampIndex normalizes a possibly negative bound for a length-n sequence.
func clampIndex(i, n, step int) int {
	if i < 0 {
		i += n
		if i < 0 {
			if step > 0 {
				return 0
			}
			return -1
		}
	}
	if i > n {
		i = n
	}
	if step < 0 && i >= n {
		return n - 1
	}
	return i
}

// Append adds item to the end. The item must be of the declared item type.
func (l *List) Append(item *Object) error {
	if err := l.checkItem(item); err != nil {
		return err
	}
	l.items = append(l.items, item)
	return nil
}

// Set replaces the item at index i.
func (l *List) Set(i int, item *Object) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d with length %d", ErrOutOfRange, i, len(l.items))
	}
	if err := l.checkItem(item); err != nil {
		return err
	}
	l.items[i] = item
	return nil
}

// Remove deletes the item at index i, shifting later items down.
func (l *List) Remove(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d with length %d", ErrOutOfRange, i, len(l.items))
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// Clear removes all items.
func (l *List) Clear() { l.items = nil }

func (l *List) checkItem(item *Object) error {
	if item == nil || item.desc.TypeName != l.itemType {
		got := "nil"
		if item != nil {
			got = item.desc.TypeName
		}
		return fmt.Errorf("%w: want %s, got %s", ErrItemType, l.itemType, got)
	}
	return nil
}

func (l *List) unwrap(item *Object) any {
	if !l.unwrapChoice {
		return item
	}
	cg := item.desc.ChoiceGroup
	if cg == nil {
		return item
	}
	active, ok := item.props[cg.Property].(string)
	if !ok || active == "" {
		return item
	}
	if payload, ok := item.props[active]; ok && payload != nil {
		return payload
	}
	return item
}

// encodeDoc renders the container as a canonical sequence.
func (l *List) encodeDoc() []any {
	out := make([]any, len(l.items))
	for i, item := range l.items {
		out[i] = item.encodeDoc()
	}
	return out
}

// Iter starts a traversal. Each call returns an independent cursor; two live
// iterators over one container never interfere.
func (l *List) Iter() *Iterator {
	return &Iterator{list: l, next: 0}
}

// Iterator is a finite, restartable cursor over a List. The cursor state
// lives here, external to the container.
type Iterator struct {
	list *List
	next int
}

// Next returns the next item (unwrapped when the container is
// choice-unwrapping) and advances the cursor. It reports false when the
// traversal is exhausted.
func (it *Iterator) Next() (any, bool) {
	if it.next >= len(it.list.items) {
		return nil, false
	}
	item := it.list.items[it.next]
	it.next++
	return it.list.unwrap(item), true
}

// Reset rewinds the cursor so the traversal can restart.
func (it *Iterator) Reset() { it.next = 0 }
