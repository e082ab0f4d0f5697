package codec

import (
	"reflect"
	"sync"

	"github.com/oneconcern/verstore/pkg/core/status"
	"github.com/oneconcern/verstore/pkg/model"
	"go.uber.org/zap"
)

type customCodec struct {
	encode func(reflect.Value) (string, error)
	decode func(string) (reflect.Value, error)
}

// Registry maps value types to storage strategies, and holds custom text codecs.
//
// A Registry is shared by the writer and the reader of a store.
type Registry struct {
	mu     sync.RWMutex
	custom map[reflect.Type]customCodec
	l      *zap.Logger
}

// Option for the codec registry
type Option func(*Registry)

// Logger sets a logger for this registry
func Logger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.l = logger
		}
	}
}

// NewRegistry builds an empty codec registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		custom: make(map[reflect.Type]customCodec),
		l:      zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// Register a custom text codec for values of type T.
//
// Registering twice for the same type is an error.
func Register[T any](r *Registry, encode func(T) (string, error), decode func(string) (T, error)) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if encode == nil || decode == nil {
		return status.ErrCodec.WrapMessage("nil codec function registered for %v", t)
	}
	return r.register(t, customCodec{
		encode: func(v reflect.Value) (string, error) {
			return encode(v.Interface().(T))
		},
		decode: func(s string) (reflect.Value, error) {
			val, err := decode(s)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(&val).Elem(), nil
		},
	})
}

// RegisterFunc registers a custom text codec for values of type t, without type parameters.
//
// The decode function must yield values assignable to t.
func (r *Registry) RegisterFunc(t reflect.Type, encode func(interface{}) (string, error), decode func(string) (interface{}, error)) error {
	if t == nil || encode == nil || decode == nil {
		return status.ErrCodec.WrapMessage("invalid codec registration for %v", t)
	}
	return r.register(t, customCodec{
		encode: func(v reflect.Value) (string, error) {
			return encode(v.Interface())
		},
		decode: func(s string) (reflect.Value, error) {
			val, err := decode(s)
			if err != nil {
				return reflect.Value{}, err
			}
			rv := reflect.ValueOf(val)
			if !rv.IsValid() || !rv.Type().AssignableTo(t) {
				return reflect.Value{}, status.ErrCodec.WrapMessage("decoder for %v yields %T", t, val)
			}
			out := reflect.New(t).Elem()
			out.Set(rv)
			return out, nil
		},
	})
}

func (r *Registry) register(t reflect.Type, c customCodec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.custom[t]; exists {
		return status.ErrCodec.WrapMessage("a codec is already registered for %v", t)
	}
	r.custom[t] = c
	r.l.Debug("registered custom codec", zap.Stringer("type", t))
	return nil
}

func (r *Registry) lookup(t reflect.Type) (customCodec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.custom[t]
	return c, ok
}

// Classify tells which strategy applies to values of type t
func (r *Registry) Classify(t reflect.Type) Strategy {
	s, _ := r.resolve(t)
	return s
}

// resolve yields the strategy for t, and the type actually encoded:
// either t, or its element type when a pointer resolves through it.
func (r *Registry) resolve(t reflect.Type) (Strategy, reflect.Type) {
	if t == nil {
		return OpaqueBinary, t
	}
	if isInline(t) {
		return Inline, t
	}
	if _, ok := r.lookup(t); ok {
		return Registered, t
	}
	if isTextConstructible(t) {
		return StringConstructible, t
	}
	if t.Kind() == reflect.Ptr {
		elem := t.Elem()
		if s, resolved := r.resolve(elem); s != OpaqueBinary && resolved == elem {
			return s, elem
		}
	}
	return OpaqueBinary, t
}

// Serializable tells if values of type t may be stored under at least one strategy.
//
// Types falling back to OpaqueBinary must round-trip through CBOR: structs with
// unexported fields are rejected, unless they marshal themselves.
func (r *Registry) Serializable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if s, _ := r.resolve(t); s != OpaqueBinary {
		return true
	}
	return binarySafe(t, make(map[reflect.Type]bool))
}

// binarySafe tells if CBOR reconstructs values of type t. Registered codecs do
// not apply to values nested in a binary blob.
func binarySafe(t reflect.Type, seen map[reflect.Type]bool) bool {
	if t == nil {
		return false
	}
	if marshalsItself(t) {
		return true
	}
	if ok, visited := seen[t]; visited {
		return ok
	}
	seen[t] = true // recursive types are assumed fine until proven otherwise

	var ok bool
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		ok = true
	case reflect.Ptr, reflect.Slice, reflect.Array:
		ok = binarySafe(t.Elem(), seen)
	case reflect.Map:
		ok = binarySafe(t.Key(), seen) && binarySafe(t.Elem(), seen)
	case reflect.Struct:
		ok = true
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Name == "_" {
				continue
			}
			if !f.IsExported() && !(f.Anonymous && f.Type.Kind() == reflect.Struct) {
				// private state is dropped by the encoder
				ok = false
				break
			}
			if !binarySafe(f.Type, seen) {
				ok = false
				break
			}
		}
	default:
		// complex numbers, channels, functions, interfaces, unsafe pointers
		ok = false
	}
	seen[t] = ok
	return ok
}

// EncodeCustom encodes a value with the codec registered for its exact type
func (r *Registry) EncodeCustom(v interface{}) (string, error) {
	t := reflect.TypeOf(v)
	c, ok := r.lookup(t)
	if !ok {
		return "", status.ErrCodec.WrapMessage("no codec registered for %v", t)
	}
	s, err := c.encode(reflect.ValueOf(v))
	if err != nil {
		return "", status.ErrCodec.WrapMessage("encoding %v", t).Wrap(err)
	}
	return s, nil
}

// DecodeCustom decodes a value of type t with the codec registered for this exact type
func (r *Registry) DecodeCustom(s string, t reflect.Type) (interface{}, error) {
	c, ok := r.lookup(t)
	if !ok {
		return nil, status.ErrCodec.WrapMessage("no codec registered for %v", t)
	}
	v, err := c.decode(s)
	if err != nil {
		return nil, status.ErrCodec.WrapMessage("decoding %v", t).Wrap(err)
	}
	return v.Interface(), nil
}

// Encode a value as a property value, following the strategy of the value's type.
//
// Text strategies yield text property values, OpaqueBinary yields a binary one.
// A nil pointer resolving through its element cannot be encoded: callers treat nil values as absent.
func (r *Registry) Encode(v reflect.Value) (model.PropertyValue, Strategy, error) {
	if !v.IsValid() {
		return model.PropertyValue{}, OpaqueBinary, status.ErrCodec.WrapMessage("cannot encode an invalid value")
	}
	t := v.Type()
	s, resolved := r.resolve(t)
	if resolved != t {
		if v.IsNil() {
			return model.PropertyValue{}, s, status.ErrCodec.WrapMessage("cannot encode nil %v", t)
		}
		v = v.Elem()
	}

	var (
		text string
		err  error
	)
	switch s {
	case Inline:
		text = formatInline(v)
	case Registered:
		c, ok := r.lookup(resolved)
		if !ok {
			return model.PropertyValue{}, s, status.ErrCodec.WrapMessage("no codec registered for %v", resolved)
		}
		text, err = c.encode(v)
	case StringConstructible:
		text, err = marshalText(v)
	default:
		var data []byte
		data, err = marshalBinary(v)
		if err != nil {
			return model.PropertyValue{}, s, status.ErrCodec.WrapMessage("encoding %v", t).Wrap(err)
		}
		return model.BinaryValue(data), s, nil
	}
	if err != nil {
		return model.PropertyValue{}, s, status.ErrCodec.WrapMessage("encoding %v", t).Wrap(err)
	}
	return model.StringValue(text), s, nil
}

// Decode a property value into a value of type t, following the strategy of t
func (r *Registry) Decode(pv model.PropertyValue, t reflect.Type) (reflect.Value, error) {
	if t == nil {
		return reflect.Value{}, status.ErrCodec.WrapMessage("cannot decode into a nil type")
	}
	s, resolved := r.resolve(t)

	var (
		out reflect.Value
		err error
	)
	switch s {
	case Inline:
		out, err = parseInline(pv.String(), resolved)
	case Registered:
		c, ok := r.lookup(resolved)
		if !ok {
			return reflect.Value{}, status.ErrCodec.WrapMessage("no codec registered for %v", resolved)
		}
		out, err = c.decode(pv.String())
	case StringConstructible:
		out, err = unmarshalText(pv.String(), resolved)
	default:
		out, err = unmarshalBinary(pv.Bytes(), resolved)
	}
	if err != nil {
		return reflect.Value{}, status.ErrCodec.WrapMessage("decoding %v as %v", t, s).Wrap(err)
	}

	if resolved != t {
		p := reflect.New(resolved)
		p.Elem().Set(out)
		out = p
	}
	return out, nil
}
