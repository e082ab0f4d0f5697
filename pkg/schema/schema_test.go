package schema

import (
	"reflect"
	"testing"
	"time"

	"github.com/oneconcern/verstore/pkg/codec"
	"github.com/oneconcern/verstore/pkg/core/status"
	"github.com/oneconcern/verstore/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cut keeps private state, and cannot be stored as a binary blob
type cut struct {
	minutes int
	Label   string
}

type film struct {
	title    string
	year     int
	synopsis string
	released *time.Time
	rating   float32
}

func (f *film) GetTitle() string           { return f.title }
func (f *film) SetTitle(v string)          { f.title = v }
func (f *film) GetYear() int               { return f.year }
func (f *film) SetYear(v int)              { f.year = v }
func (f *film) GetSynopsis() string        { return f.synopsis }
func (f *film) SetSynopsis(v string)       { f.synopsis = v }
func (f *film) GetReleased() *time.Time    { return f.released }
func (f *film) SetReleased(v *time.Time)   { f.released = v }
func (f *film) Rating() float32            { return f.rating }
func (f *film) SetRating(v float32)        { f.rating = v }
func (f *film) GetCount() int              { return 0 }
func (f *film) SetCount(int64)             {}
func (f *film) GetID() string              { return "" }
func (f *film) GetUpdates() chan string    { return nil }
func (f *film) SetUpdates(chan string)     {}
func (f *film) Title() string              { return f.title }
func (f *film) GetPlot(lang string) string { return "" }

func filmDeclaration() *Declaration {
	return Declare[film](3,
		Field("GetTitle", func(f *film) string { return f.title }, func(f *film, v string) { f.title = v }),
		Field("GetYear", func(f *film) int { return f.year }, func(f *film, v int) { f.year = v }),
		Body("GetSynopsis", func(f *film) string { return f.synopsis }, func(f *film, v string) { f.synopsis = v }),
		Field("GetReleased", func(f *film) *time.Time { return f.released }, func(f *film, v *time.Time) { f.released = v }),
		Field("Rating", func(f *film) float32 { return f.rating }, func(f *film, v float32) { f.rating = v }),
	)
}

func TestFieldName(t *testing.T) {
	for _, toPin := range []struct {
		accessor, field, mutator string
	}{
		{accessor: "GetTitle", field: "title", mutator: "SetTitle"},
		{accessor: "Title", field: "title", mutator: "SetTitle"},
		{accessor: "title", field: "title", mutator: "SetTitle"},
		{accessor: "GetURL", field: "uRL", mutator: "SetURL"},
		{accessor: "Get", field: "get", mutator: "SetGet"},
		{accessor: "getter", field: "getter", mutator: "SetGetter"},
		{accessor: "Getter", field: "getter", mutator: "SetGetter"},
		{accessor: "Getaway", field: "getaway", mutator: "SetGetaway"},
		{accessor: "GetÉtoile", field: "étoile", mutator: "SetÉtoile"},
		{accessor: "Get_x", field: "get_x", mutator: "SetGet_x"},
		{accessor: "X", field: "x", mutator: "SetX"},
		{accessor: "Étoile", field: "étoile", mutator: "SetÉtoile"},
		{accessor: ""},
		{accessor: "1st"},
		{accessor: "release-date"},
	} {
		testcase := toPin
		assert.Equalf(t, testcase.field, FieldName(testcase.accessor), "field name for %q", testcase.accessor)
		assert.Equalf(t, testcase.mutator, MutatorName(testcase.accessor), "mutator name for %q", testcase.accessor)
	}
}

func TestInspectDeclared(t *testing.T) {
	members, err := NewInspector(codec.NewRegistry()).Inspect(filmDeclaration())
	require.NoError(t, err)
	require.Len(t, members, 5)

	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.FieldName)
	}
	assert.Equal(t, []string{"title", "year", "synopsis", "released", "rating"}, names)
	assert.Equal(t, RoleBody, members[2].Role)
	assert.Equal(t, "field.title", members[0].Property())
	assert.Equal(t, reflect.TypeOf(&time.Time{}), members[3].Type)

	f := &film{title: "Brazil", year: 1985}
	obj := reflect.ValueOf(f)
	assert.Equal(t, "Brazil", members[0].Get(obj).Interface())

	members[1].Set(obj, reflect.ValueOf(1986))
	assert.Equal(t, 1986, f.year)

	_, present := members[3].Value(obj)
	assert.False(t, present, "a nil pointer is absent")

	when := time.Date(1985, time.February, 20, 0, 0, 0, 0, time.UTC)
	f.released = &when
	v, present := members[3].Value(obj)
	require.True(t, present)
	assert.Equal(t, &when, v.Interface())
}

func TestInspectMethods(t *testing.T) {
	decl := Methods[film](2, "GetSynopsis", "GetTitle", "GetYear", "GetReleased", "Rating")
	members, err := NewInspector(nil).Inspect(decl)
	require.NoError(t, err)
	require.Len(t, members, 5)

	assert.Equal(t, "synopsis", members[0].FieldName)
	assert.Equal(t, RoleBody, members[0].Role)
	assert.Equal(t, "rating", members[4].FieldName)
	assert.Equal(t, reflect.TypeOf(float32(0)), members[4].Type)

	f := &film{}
	obj := reflect.ValueOf(f)
	members[1].Set(obj, reflect.ValueOf("Time Bandits"))
	members[4].Set(obj, reflect.ValueOf(float32(4.5)))
	assert.Equal(t, "Time Bandits", f.title)
	assert.Equal(t, "Time Bandits", members[1].Get(obj).Interface())
	assert.Equal(t, float32(4.5), members[4].Get(obj).Interface())
}

func TestInspectNotStorable(t *testing.T) {
	type empty struct{}

	for _, toPin := range []struct {
		name string
		decl *Declaration
	}{
		{name: "nil declaration", decl: nil},
		{name: "nil type", decl: &Declaration{}},
		{name: "not a struct", decl: Declare[int](1)},
		{name: "negative version", decl: Declare[empty](-1)},
		{
			name: "malformed accessor",
			decl: Declare[film](1, Field("release-date", func(f *film) int { return f.year }, func(f *film, v int) { f.year = v })),
		},
		{name: "missing accessor", decl: Methods[film](1, "", "GetDirector")},
		{name: "accessor with arguments", decl: Methods[film](1, "GetPlot")},
		{name: "missing mutator method", decl: Methods[film](1, "", "GetID")},
		{
			name: "missing mutator function",
			decl: Declare[film](1, Field[film, string]("GetTitle", func(f *film) string { return f.title }, nil)),
		},
		{
			name: "missing accessor function",
			decl: Declare[film](1, Field[film, string]("GetTitle", nil, func(f *film, v string) { f.title = v })),
		},
		{name: "mutator type mismatch", decl: Methods[film](1, "", "GetCount")},
		{name: "not serializable", decl: Methods[film](1, "", "GetUpdates")},
		{
			name: "interface member",
			decl: Declare[film](1, Field("GetAny", func(*film) interface{} { return nil }, func(*film, interface{}) {})),
		},
		{
			name: "private state",
			decl: Declare[film](1, Field("GetCut", func(*film) cut { return cut{} }, func(*film, cut) {})),
		},
		{name: "duplicate field name", decl: Methods[film](1, "", "GetTitle", "Title")},
		{
			name: "two bodies",
			decl: Declare[film](1,
				Body("GetTitle", func(f *film) string { return f.title }, func(f *film, v string) { f.title = v }),
				Body("GetSynopsis", func(f *film) string { return f.synopsis }, func(f *film, v string) { f.synopsis = v }),
			),
		},
	} {
		testcase := toPin
		t.Run(testcase.name, func(t *testing.T) {
			_, err := NewInspector(codec.NewRegistry()).Inspect(testcase.decl)
			require.Error(t, err)
			assert.Truef(t, errors.Is(err, status.ErrNotStorable), "unexpected error kind: %v", err)
		})
	}
}

func TestInspectEmpty(t *testing.T) {
	type empty struct{}

	members, err := NewInspector(nil).Inspect(Declare[empty](0))
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestInspectRegisteredCodec(t *testing.T) {
	type handler struct {
		fn func()
	}
	type withHandler struct {
		h handler
	}
	decl := Declare[withHandler](1,
		Field("Handler", func(w *withHandler) handler { return w.h }, func(w *withHandler, h handler) { w.h = h }),
	)

	registry := codec.NewRegistry()
	_, err := NewInspector(registry).Inspect(decl)
	require.NoError(t, err, "structs with unexported members only are serializable")

	require.NoError(t, codec.Register(registry,
		func(handler) (string, error) { return "noop", nil },
		func(string) (handler, error) { return handler{}, nil },
	))
	_, err = NewInspector(registry).Inspect(decl)
	require.NoError(t, err)
}

func TestCatalog(t *testing.T) {
	catalog := NewCatalog(NewInspector(codec.NewRegistry()))

	registered, err := catalog.Register(filmDeclaration())
	require.NoError(t, err)
	assert.Equal(t, "github.com/oneconcern/verstore/pkg/schema.film", registered.Name)
	assert.Equal(t, 3, registered.Version)
	assert.Len(t, registered.Fields(), 4)

	body, ok := registered.Body()
	require.True(t, ok)
	assert.Equal(t, "synopsis", body.FieldName)

	found, err := catalog.Lookup(reflect.TypeOf(film{}))
	require.NoError(t, err)
	assert.Same(t, registered, found)

	found, err = catalog.Lookup(reflect.TypeOf(&film{}))
	require.NoError(t, err)
	assert.Same(t, registered, found)

	_, err = catalog.Lookup(reflect.TypeOf(time.Time{}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotStorable))

	_, err = catalog.Lookup(nil)
	require.Error(t, err)

	_, err = catalog.Register(Declare[film](-2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotStorable))

	assert.Panics(t, func() { catalog.MustRegister(nil) })

	// registering again replaces the declaration
	replaced := catalog.MustRegister(Methods[film](4, "", "GetTitle"))
	found, err = catalog.Lookup(reflect.TypeOf(film{}))
	require.NoError(t, err)
	assert.Same(t, replaced, found)
	_, hasBody := found.Body()
	assert.False(t, hasBody)
}

func TestTypeNew(t *testing.T) {
	catalog := NewCatalog(nil)

	registered := catalog.MustRegister(filmDeclaration())
	obj, err := registered.New()
	require.NoError(t, err)
	assert.Equal(t, &film{}, obj.Interface())

	withConstructor := catalog.MustRegister(Declare[film](1,
		Constructor(func() *film { return &film{rating: 2.5} }),
	))
	obj, err = withConstructor.New()
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), obj.Interface().(*film).rating)

	broken := catalog.MustRegister(Declare[film](1,
		Constructor(func() *film { return nil }),
	))
	_, err = broken.New()
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotStorable))
}

func TestRole(t *testing.T) {
	assert.Equal(t, "field", RoleField.String())
	assert.Equal(t, "body", RoleBody.String())
}
