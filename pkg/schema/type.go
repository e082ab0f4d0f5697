package schema

import (
	"reflect"

	"github.com/oneconcern/verstore/pkg/core/status"
)

// Type is a registered storable type
type Type struct {
	// Name is the fully qualified type identifier, stored as class.name
	Name    string
	Version int
	GoType  reflect.Type
	Members []Member

	construct func() reflect.Value
}

// TypeName yields the fully qualified identifier of a Go type, e.g. "github.com/acme/films.Movie"
func TypeName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Fields yields the members stored as properties
func (t *Type) Fields() []Member {
	fields := make([]Member, 0, len(t.Members))
	for _, m := range t.Members {
		if m.Role == RoleField {
			fields = append(fields, m)
		}
	}
	return fields
}

// Body yields the member stored as content, if any
func (t *Type) Body() (Member, bool) {
	for _, m := range t.Members {
		if m.Role == RoleBody {
			return m, true
		}
	}
	return Member{}, false
}

// New builds a pointer to a new instance, using the declared constructor if any
func (t *Type) New() (reflect.Value, error) {
	if t.construct == nil {
		return reflect.New(t.GoType), nil
	}
	obj := t.construct()
	if !obj.IsValid() || obj.Kind() != reflect.Ptr || obj.IsNil() {
		return reflect.Value{}, status.ErrNotStorable.WrapMessage("constructor for %s yields no instance", t.Name)
	}
	if obj.Type().Elem() != t.GoType {
		return reflect.Value{}, status.ErrNotStorable.WrapMessage("constructor for %s yields %v", t.Name, obj.Type())
	}
	return obj, nil
}
