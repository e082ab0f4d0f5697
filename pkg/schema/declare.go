package schema

import (
	"reflect"
)

// Role of a storable member
type Role uint8

const (
	// RoleField members are stored as file properties
	RoleField Role = iota
	// RoleBody is the member stored as file content. A type has at most one.
	RoleBody
)

func (r Role) String() string {
	if r == RoleBody {
		return "body"
	}
	return "field"
}

// Accessor is the raw declaration of a storable member, before inspection.
//
// Get and Set receive a pointer to the declared struct type.
type Accessor struct {
	Name string
	Role Role
	Type reflect.Type
	Get  func(obj reflect.Value) reflect.Value

	Mutator     string
	MutatorType reflect.Type
	Set         func(obj, value reflect.Value)
}

// Declaration of a storable type: its version and member table
type Declaration struct {
	Type      reflect.Type
	Version   int
	Accessors []Accessor

	// New optionally builds a pointer to a new instance
	New func() reflect.Value
}

// Def is a declaration element for type T
type Def[T any] func(*Declaration)

// Declare a storable type T at some version, with a table of members
func Declare[T any](version int, defs ...Def[T]) *Declaration {
	d := &Declaration{
		Type:    reflect.TypeOf((*T)(nil)).Elem(),
		Version: version,
	}
	for _, apply := range defs {
		if apply != nil {
			apply(d)
		}
	}
	return d
}

// Field declares a member stored as a property. The accessor name determines the field name.
func Field[T, V any](accessor string, get func(*T) V, set func(*T, V)) Def[T] {
	return member(accessor, RoleField, get, set)
}

// Body declares the member stored as the file content
func Body[T, V any](accessor string, get func(*T) V, set func(*T, V)) Def[T] {
	return member(accessor, RoleBody, get, set)
}

// Constructor declares how to build new instances of T on read.
// By default, readers start from a zero value.
func Constructor[T any](fn func() *T) Def[T] {
	return func(d *Declaration) {
		if fn == nil {
			return
		}
		d.New = func() reflect.Value {
			return reflect.ValueOf(fn())
		}
	}
}

func member[T, V any](accessor string, role Role, get func(*T) V, set func(*T, V)) Def[T] {
	return func(d *Declaration) {
		valueType := reflect.TypeOf((*V)(nil)).Elem()
		a := Accessor{
			Name: accessor,
			Role: role,
			Type: valueType,
		}
		if get != nil {
			a.Get = func(obj reflect.Value) reflect.Value {
				v := get(obj.Interface().(*T))
				return reflect.ValueOf(&v).Elem()
			}
		}
		if set != nil {
			a.Mutator = MutatorName(accessor)
			a.MutatorType = valueType
			a.Set = func(obj, value reflect.Value) {
				set(obj.Interface().(*T), value.Interface().(V))
			}
		}
		d.Accessors = append(d.Accessors, a)
	}
}

// Methods declares a storable type T from the accessor methods of *T.
//
// The body accessor is optional (pass ""). Each accessor takes no argument and returns the value.
// Its mutator is located by name ("SetTitle" for "GetTitle" or "Title"), and takes the value as single argument.
// Missing or mismatched methods are reported when the declaration is inspected.
func Methods[T any](version int, body string, fields ...string) *Declaration {
	d := Declare[T](version)
	ptrType := reflect.PointerTo(d.Type)

	declare := func(name string, role Role) {
		a := Accessor{
			Name:    name,
			Role:    role,
			Mutator: MutatorName(name),
		}

		if m, ok := ptrType.MethodByName(name); ok && m.Type.NumIn() == 1 && m.Type.NumOut() == 1 {
			index := m.Index
			a.Type = m.Type.Out(0)
			a.Get = func(obj reflect.Value) reflect.Value {
				return obj.Method(index).Call(nil)[0]
			}
		}

		if a.Mutator == "" {
			d.Accessors = append(d.Accessors, a)
			return
		}
		if m, ok := ptrType.MethodByName(a.Mutator); ok && m.Type.NumIn() == 2 {
			index := m.Index
			a.MutatorType = m.Type.In(1)
			a.Set = func(obj, value reflect.Value) {
				obj.Method(index).Call([]reflect.Value{value})
			}
		}
		d.Accessors = append(d.Accessors, a)
	}

	if body != "" {
		declare(body, RoleBody)
	}
	for _, field := range fields {
		declare(field, RoleField)
	}
	return d
}
