package schema

import (
	"reflect"
	"sync"

	"github.com/oneconcern/verstore/pkg/core/status"
	"go.uber.org/zap"
)

// Catalog holds the registered storable types
type Catalog struct {
	inspector *Inspector
	mu        sync.RWMutex
	types     map[reflect.Type]*Type
	l         *zap.Logger
}

// CatalogOption configures a catalog
type CatalogOption func(*Catalog)

// Logger for the catalog
func Logger(l *zap.Logger) CatalogOption {
	return func(c *Catalog) {
		if l != nil {
			c.l = l
		}
	}
}

// NewCatalog builds an empty catalog of storable types
func NewCatalog(inspector *Inspector, opts ...CatalogOption) *Catalog {
	if inspector == nil {
		inspector = NewInspector(nil)
	}
	c := &Catalog{
		inspector: inspector,
		types:     make(map[reflect.Type]*Type),
		l:         zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}
	return c
}

// Register a declaration, once inspected.
//
// Registering a type again replaces its previous declaration.
func (c *Catalog) Register(decl *Declaration) (*Type, error) {
	members, err := c.inspector.Inspect(decl)
	if err != nil {
		return nil, err
	}
	t := &Type{
		Name:      TypeName(decl.Type),
		Version:   decl.Version,
		GoType:    decl.Type,
		Members:   members,
		construct: decl.New,
	}

	c.mu.Lock()
	c.types[decl.Type] = t
	c.mu.Unlock()

	c.l.Debug("registered storable type",
		zap.String("type", t.Name),
		zap.Int("version", t.Version),
		zap.Int("members", len(members)),
	)
	return t, nil
}

// MustRegister registers a declaration or panics
func (c *Catalog) MustRegister(decl *Declaration) *Type {
	t, err := c.Register(decl)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup a registered type. A pointer type resolves to its element.
func (c *Catalog) Lookup(t reflect.Type) (*Type, error) {
	if t == nil {
		return nil, status.ErrNotStorable.WrapMessage("nil type")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	registered, ok := c.types[t]
	if !ok {
		return nil, status.ErrNotStorable.WrapMessage("%v is not registered as storable", t)
	}
	return registered, nil
}
