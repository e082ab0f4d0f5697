package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oneconcern/verstore/pkg/codec"
	"github.com/oneconcern/verstore/pkg/core"
	"github.com/oneconcern/verstore/pkg/dlogger"
	"github.com/oneconcern/verstore/pkg/schema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Genre of a movie, stored by name
type Genre int

// Known genres
const (
	Drama Genre = iota + 1
	Comedy
	Fantasy
	Documentary
	Animation
)

var genres = map[Genre]string{
	Drama:       "drama",
	Comedy:      "comedy",
	Fantasy:     "fantasy",
	Documentary: "documentary",
	Animation:   "animation",
}

func (g Genre) String() string {
	if name, ok := genres[g]; ok {
		return name
	}
	return fmt.Sprintf("genre(%d)", int(g))
}

func genreNames() []string {
	names := make([]string, 0, len(genres))
	for _, name := range genres {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func encodeGenre(g Genre) (string, error) {
	name, ok := genres[g]
	if !ok {
		return "", fmt.Errorf("unknown genre %d", int(g))
	}
	return name, nil
}

func parseGenre(s string) (Genre, error) {
	for g, name := range genres {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown genre %q, expected one of %v", s, genreNames())
}

// Movie is the sample object saved by this CLI.
//
// The synopsis is the body of the stored file. Other members are stored as properties.
// Nil members are not written, so the stored ones carry over.
type Movie struct {
	ID       uuid.UUID
	Title    string
	Year     int
	Released time.Time
	Genre    Genre
	Cast     []string
	Rating   *float32
	Synopsis *string
}

// MovieVersion is the version of the stored movie layout
const MovieVersion = 1

func movieDeclaration() *schema.Declaration {
	return schema.Declare[Movie](MovieVersion,
		schema.Field("GetIdentifier", func(m *Movie) uuid.UUID { return m.ID }, func(m *Movie, v uuid.UUID) { m.ID = v }),
		schema.Field("GetTitle", func(m *Movie) string { return m.Title }, func(m *Movie, v string) { m.Title = v }),
		schema.Field("GetYear", func(m *Movie) int { return m.Year }, func(m *Movie, v int) { m.Year = v }),
		schema.Field("GetReleased", func(m *Movie) time.Time { return m.Released }, func(m *Movie, v time.Time) { m.Released = v }),
		schema.Field("GetGenre", func(m *Movie) Genre { return m.Genre }, func(m *Movie, v Genre) { m.Genre = v }),
		schema.Field("GetCast", func(m *Movie) []string { return m.Cast }, func(m *Movie, v []string) { m.Cast = v }),
		schema.Field("GetRating", func(m *Movie) *float32 { return m.Rating }, func(m *Movie, v *float32) { m.Rating = v }),
		schema.Body("GetSynopsis", func(m *Movie) *string { return m.Synopsis }, func(m *Movie, v *string) { m.Synopsis = v }),
	)
}

// movieCmd represents the movie related commands
var movieCmd = &cobra.Command{
	Use:   "movie",
	Short: "Commands to save and read movies",
	Long: `Commands to save movies to the store and read them back.

A movie is stored as a file: the synopsis is its content, other members are properties of the file.`,
}

func init() {
	rootCmd.AddCommand(movieCmd)
}

// openStore connects to the store designated by the flags, with the movie type registered
func openStore(ctx context.Context) (*core.Store, *zap.Logger, error) {
	l, err := dlogger.GetLogger(params.root.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", params.root.logLevel, err)
	}
	codecs := codec.NewRegistry(codec.Logger(l))
	if err = codec.Register(codecs, encodeGenre, parseGenre); err != nil {
		return nil, nil, err
	}
	s, err := core.Open(ctx, params.root.store,
		core.Logger(l),
		core.Codecs(codecs),
		core.CommitMessage(params.root.message),
	)
	if err != nil {
		return nil, nil, err
	}
	if _, err = s.Register(movieDeclaration()); err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	return s, l, nil
}
