package schema

import (
	"reflect"

	"github.com/oneconcern/verstore/pkg/codec"
	"github.com/oneconcern/verstore/pkg/core/status"
)

// Inspector validates declarations of storable types
type Inspector struct {
	codecs *codec.Registry
}

// NewInspector builds an inspector checking value types against a codec registry
func NewInspector(codecs *codec.Registry) *Inspector {
	if codecs == nil {
		codecs = codec.NewRegistry()
	}
	return &Inspector{codecs: codecs}
}

// Inspect a declaration and yield its storable members, in declaration order.
//
// All structural problems are reported as status.ErrNotStorable.
// A type with no member is valid.
func (i *Inspector) Inspect(decl *Declaration) ([]Member, error) {
	if decl == nil || decl.Type == nil {
		return nil, status.ErrNotStorable.WrapMessage("nil declaration")
	}
	if decl.Type.Kind() != reflect.Struct {
		return nil, status.ErrNotStorable.WrapMessage("%v is not a struct", decl.Type)
	}
	if decl.Version < 0 {
		return nil, status.ErrNotStorable.WrapMessage("%v has a negative version %d", decl.Type, decl.Version)
	}

	members := make([]Member, 0, len(decl.Accessors))
	names := make(map[string]string, len(decl.Accessors))
	var body string

	for _, a := range decl.Accessors {
		fieldName := FieldName(a.Name)
		switch {
		case fieldName == "":
			return nil, status.ErrNotStorable.WrapMessage("%v: malformed accessor name %q", decl.Type, a.Name)
		case a.Get == nil || a.Type == nil:
			return nil, status.ErrNotStorable.WrapMessage("%v: missing accessor %s", decl.Type, a.Name)
		case a.Set == nil || a.MutatorType == nil:
			return nil, status.ErrNotStorable.WrapMessage("%v: missing mutator %s for %s", decl.Type, MutatorName(a.Name), a.Name)
		case a.MutatorType != a.Type:
			return nil, status.ErrNotStorable.WrapMessage("%v: mutator %s takes %v, but %s returns %v",
				decl.Type, a.Mutator, a.MutatorType, a.Name, a.Type)
		case !i.codecs.Serializable(a.Type):
			return nil, status.ErrNotStorable.WrapMessage("%v: %s returns %v, which cannot be serialized", decl.Type, a.Name, a.Type)
		}

		if previous, duplicate := names[fieldName]; duplicate {
			return nil, status.ErrNotStorable.WrapMessage("%v: %s and %s both map to field %q", decl.Type, previous, a.Name, fieldName)
		}
		names[fieldName] = a.Name

		if a.Role == RoleBody {
			if body != "" {
				return nil, status.ErrNotStorable.WrapMessage("%v: cannot store both %s and %s as content", decl.Type, body, a.Name)
			}
			body = a.Name
		}

		members = append(members, Member{
			FieldName: fieldName,
			Accessor:  a.Name,
			Role:      a.Role,
			Type:      a.Type,
			get:       a.Get,
			set:       a.Set,
		})
	}
	return members, nil
}
