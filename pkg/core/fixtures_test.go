package core

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oneconcern/verstore/pkg/codec"
	"github.com/oneconcern/verstore/pkg/dlogger"
	"github.com/oneconcern/verstore/pkg/schema"
	"github.com/oneconcern/verstore/pkg/store"
	"github.com/oneconcern/verstore/pkg/store/memory"
	"github.com/stretchr/testify/require"
)

type genre int

const (
	drama genre = iota + 1
	comedy
	fantasy
)

var genreNames = map[genre]string{drama: "drama", comedy: "comedy", fantasy: "fantasy"}

type movie struct {
	ID       uuid.UUID
	Title    string
	Year     int
	Synopsis string
	Released time.Time
	Genre    genre
	Cast     []string
	Rating   *float32
}

// review is stored with the same members as movie, under a different type name
type review struct {
	Title string
	Year  int
}

func movieDeclaration() *schema.Declaration {
	return schema.Declare[movie](2,
		schema.Field("GetIdentifier", func(m *movie) uuid.UUID { return m.ID }, func(m *movie, v uuid.UUID) { m.ID = v }),
		schema.Field("GetTitle", func(m *movie) string { return m.Title }, func(m *movie, v string) { m.Title = v }),
		schema.Field("GetYear", func(m *movie) int { return m.Year }, func(m *movie, v int) { m.Year = v }),
		schema.Body("GetSynopsis", func(m *movie) string { return m.Synopsis }, func(m *movie, v string) { m.Synopsis = v }),
		schema.Field("GetReleased", func(m *movie) time.Time { return m.Released }, func(m *movie, v time.Time) { m.Released = v }),
		schema.Field("GetGenre", func(m *movie) genre { return m.Genre }, func(m *movie, v genre) { m.Genre = v }),
		schema.Field("GetCast", func(m *movie) []string { return m.Cast }, func(m *movie, v []string) { m.Cast = v }),
		schema.Field("GetRating", func(m *movie) *float32 { return m.Rating }, func(m *movie, v *float32) { m.Rating = v }),
	)
}

func reviewDeclaration() *schema.Declaration {
	return schema.Declare[review](1,
		schema.Field("GetTitle", func(r *review) string { return r.Title }, func(r *review, v string) { r.Title = v }),
		schema.Field("GetYear", func(r *review) int { return r.Year }, func(r *review, v int) { r.Year = v }),
	)
}

func registerGenre(t testing.TB, r *codec.Registry) {
	require.NoError(t, codec.Register(r,
		func(g genre) (string, error) {
			name, ok := genreNames[g]
			if !ok {
				return "", fmt.Errorf("unknown genre %d", g)
			}
			return name, nil
		},
		func(s string) (genre, error) {
			for g, name := range genreNames {
				if strings.EqualFold(name, s) {
					return g, nil
				}
			}
			return 0, fmt.Errorf("unknown genre %q", s)
		},
	))
}

func newTestStore(t testing.TB, repo store.Repository, opts ...Option) *Store {
	if repo == nil {
		repo = memory.New(t.Name())
	}
	s, err := New(repo, append([]Option{Logger(dlogger.TestLogger())}, opts...)...)
	require.NoError(t, err)
	registerGenre(t, s.Codecs())
	_, err = s.Register(movieDeclaration())
	require.NoError(t, err)
	_, err = s.Register(reviewDeclaration())
	require.NoError(t, err)
	return s
}

func rating(r float32) *float32 {
	return &r
}

func wildThings() *movie {
	return &movie{
		ID:       uuid.MustParse("6f1c8e38-3c2a-4c8e-9f4e-0b8f5a7f2d11"),
		Title:    "Where the Wild Things Are",
		Year:     2009,
		Synopsis: "Max, a wild and imaginative boy, sails away to the land of the Wild Things.",
		Released: time.Date(2009, time.October, 16, 0, 0, 0, 0, time.UTC),
		Genre:    fantasy,
		Cast:     []string{"Max Records", "Catherine Keener", "James Gandolfini"},
		Rating:   rating(3.5),
	}
}
