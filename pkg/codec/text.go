package codec

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

var (
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	stringerType        = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// inlineTypes are the predeclared scalar types. Named types with a scalar kind
// (e.g. time.Duration) are not inline: they may carry a registered codec or text methods.
var inlineTypes = map[reflect.Type]struct{}{
	reflect.TypeOf(false):      {},
	reflect.TypeOf(""):         {},
	reflect.TypeOf(int(0)):     {},
	reflect.TypeOf(int8(0)):    {},
	reflect.TypeOf(int16(0)):   {},
	reflect.TypeOf(int32(0)):   {},
	reflect.TypeOf(int64(0)):   {},
	reflect.TypeOf(uint(0)):    {},
	reflect.TypeOf(uint8(0)):   {},
	reflect.TypeOf(uint16(0)):  {},
	reflect.TypeOf(uint32(0)):  {},
	reflect.TypeOf(uint64(0)):  {},
	reflect.TypeOf(float32(0)): {},
	reflect.TypeOf(float64(0)): {},
}

func isInline(t reflect.Type) bool {
	_, ok := inlineTypes[t]
	return ok
}

// isTextConstructible tells if a type builds from text and renders back to text
func isTextConstructible(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface:
		return false
	}
	pt := reflect.PointerTo(t)
	if !pt.Implements(textUnmarshalerType) {
		return false
	}
	return pt.Implements(textMarshalerType) || pt.Implements(stringerType)
}

func formatInline(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits())
	default:
		return v.String()
	}
}

func parseInline(s string, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetFloat(f)
	case reflect.String:
		out.SetString(s)
	default:
		return reflect.Value{}, fmt.Errorf("type %v is not inline", t)
	}
	return out, nil
}

func marshalText(v reflect.Value) (string, error) {
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	switch m := p.Interface().(type) {
	case encoding.TextMarshaler:
		b, err := m.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	case fmt.Stringer:
		return m.String(), nil
	default:
		return "", fmt.Errorf("type %v does not render as text", v.Type())
	}
}

func unmarshalText(s string, t reflect.Type) (reflect.Value, error) {
	p := reflect.New(t)
	u, ok := p.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return reflect.Value{}, fmt.Errorf("type %v does not build from text", t)
	}
	if err := u.UnmarshalText([]byte(s)); err != nil {
		return reflect.Value{}, err
	}
	return p.Elem(), nil
}
