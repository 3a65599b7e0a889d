package runtime

import (
	"fmt"
	"sort"
	"sync"
)

// AttributeStore is the mutable name->value map shared by every holder of a
// class or object. Values are never copied out of it.
type AttributeStore struct {
	values map[string]Value
	mu     sync.RWMutex
}

func NewAttributeStore() *AttributeStore {
	return &AttributeStore{values: make(map[string]Value)}
}

// NewAttributeStoreFrom takes ownership of values.
func NewAttributeStoreFrom(values map[string]Value) *AttributeStore {
	if values == nil {
		values = make(map[string]Value)
	}
	return &AttributeStore{values: values}
}

func (s *AttributeStore) Get(name string) (Value, bool) {
	s.mu.RLock()
	v, ok := s.values[name]
	s.mu.RUnlock()
	return v, ok
}

func (s *AttributeStore) Set(name string, value Value) {
	s.mu.Lock()
	s.values[name] = value
	s.mu.Unlock()
}

func (s *AttributeStore) Len() int {
	s.mu.RLock()
	n := len(s.values)
	s.mu.RUnlock()
	return n
}

// Keys returns the attribute names in sorted order.
func (s *AttributeStore) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// GetAttr reads name from the value's own attribute map. Only classes and
// objects carry attributes; there is no fallback from an object to its class.
func GetAttr(name string, value Value) (Value, bool, error) {
	switch v := value.(type) {
	case *ClassValue:
		got, ok := v.Attrs.Get(name)
		return got, ok, nil
	case *ObjectValue:
		got, ok := v.Attrs.Get(name)
		return got, ok, nil
	default:
		return nil, false, fmt.Errorf("%w: '%s' object has no attribute '%s'", ErrNotAttributable, kindName(value), name)
	}
}

// SetAttr writes name into the target's own attribute map, visible to every
// holder of the same class or object.
func SetAttr(name string, value Value, target Value) error {
	switch t := target.(type) {
	case *ClassValue:
		t.Attrs.Set(name, value)
		return nil
	case *ObjectValue:
		t.Attrs.Set(name, value)
		return nil
	default:
		return fmt.Errorf("%w: cannot set attribute '%s' on '%s' object", ErrNotAttributable, name, kindName(target))
	}
}

// GetClassAttr reads name from the class of obj, never from obj's own map.
// Base classes are not searched.
func GetClassAttr(name string, obj Value) (Value, bool, error) {
	object, ok := obj.(*ObjectValue)
	if !ok {
		return nil, false, fmt.Errorf("%w: '%s' object has no methods", ErrNotAttributable, kindName(obj))
	}
	class, err := ClassOf(object)
	if err != nil {
		return nil, false, err
	}
	got, found := class.Attrs.Get(name)
	return got, found, nil
}

// ClassOf returns the object's class, failing when the class slot holds
// anything but a class.
func ClassOf(object *ObjectValue) (*ClassValue, error) {
	class, ok := object.Class.(*ClassValue)
	if !ok || class == nil {
		return nil, fmt.Errorf("%w: object class is %s, not a class", ErrMalformedObject, kindName(object.Class))
	}
	return class, nil
}

func kindName(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.Kind().String()
}
