package schema

import (
	"reflect"

	"github.com/oneconcern/verstore/pkg/model"
)

// Member is a validated storable member of some type
type Member struct {
	FieldName string
	Accessor  string
	Role      Role
	Type      reflect.Type

	get func(reflect.Value) reflect.Value
	set func(obj, value reflect.Value)
}

// Property yields the name of the property holding this member
func (m Member) Property() string {
	return model.FieldProperty(m.FieldName)
}

// Get the value of this member from a pointer to the object
func (m Member) Get(obj reflect.Value) reflect.Value {
	return m.get(obj)
}

// Value gets the value of this member, and tells if it is present.
// Nil pointers, maps, slices and interfaces are absent.
func (m Member) Value(obj reflect.Value) (reflect.Value, bool) {
	v := m.get(obj)
	if !v.IsValid() {
		return v, false
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		if v.IsNil() {
			return v, false
		}
	}
	return v, true
}

// Set the value of this member, on a pointer to the object
func (m Member) Set(obj, value reflect.Value) {
	m.set(obj, value)
}
