package codec

import (
	"encoding"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
var encMode cbor.EncMode

// decMode accepts standard CBOR. Unknown fields are silently ignored.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// timestamps keep their full precision and location offset
	encOptions.Time = cbor.TimeRFC3339Nano
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

var (
	cborMarshalerType     = reflect.TypeOf((*cbor.Marshaler)(nil)).Elem()
	cborUnmarshalerType   = reflect.TypeOf((*cbor.Unmarshaler)(nil)).Elem()
	binaryMarshalerType   = reflect.TypeOf((*encoding.BinaryMarshaler)(nil)).Elem()
	binaryUnmarshalerType = reflect.TypeOf((*encoding.BinaryUnmarshaler)(nil)).Elem()
)

// marshalsItself tells if values of type t bring their own encoding both ways,
// which the CBOR encoder uses instead of walking their fields
func marshalsItself(t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return false
	}
	pt := reflect.PointerTo(t)
	implements := func(m, u reflect.Type) bool {
		return pt.Implements(m) && pt.Implements(u)
	}
	return implements(cborMarshalerType, cborUnmarshalerType) ||
		implements(binaryMarshalerType, binaryUnmarshalerType) ||
		implements(textMarshalerType, textUnmarshalerType)
}

func marshalBinary(v reflect.Value) ([]byte, error) {
	return encMode.Marshal(v.Interface())
}

func unmarshalBinary(data []byte, t reflect.Type) (reflect.Value, error) {
	target := reflect.New(t)
	if err := decMode.Unmarshal(data, target.Interface()); err != nil {
		return reflect.Value{}, err
	}
	return target.Elem(), nil
}
