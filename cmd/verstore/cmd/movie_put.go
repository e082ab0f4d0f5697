package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/oneconcern/verstore/pkg/core"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var moviePutCmd = &cobra.Command{
	Use:   "put",
	Short: "Save a movie",
	Long: `Save a movie at some path in the store, as a new revision.

Saving a movie where one exists already updates it. Members which are not specified,
such as an omitted rating, cast or synopsis, are kept from the former revision.`,
	Example: `verstore movie put --path films/wild-things --title "Where the Wild Things Are" \
  --year 2009 --released 2009-10-16 --genre fantasy --cast "Max Records,Catherine Keener" \
  --rating 3.5 --synopsis-file synopsis.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		movie, err := movieFromFlags(cmd)
		if err != nil {
			wrapFatalln("invalid movie", err)
			return
		}

		s, _, err := openStore(ctx)
		if err != nil {
			wrapFatalln("open store", err)
			return
		}
		defer func() { _ = s.Close() }()

		rev, err := s.NewWriter().Write(ctx, params.movie.path, movie, core.Message(params.root.message))
		if err != nil {
			wrapFatalln("save movie", err)
			return
		}
		fmt.Fprintf(stdout, "saved %s at revision %s\n",
			color.CyanString(params.movie.path),
			color.YellowString(rev.String()),
		)
	},
}

func movieFromFlags(cmd *cobra.Command) (*Movie, error) {
	movie := &Movie{
		Title: params.movie.title,
		Year:  params.movie.year,
		Cast:  params.movie.cast,
	}

	if params.movie.id != "" {
		id, err := uuid.Parse(params.movie.id)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", params.movie.id, err)
		}
		movie.ID = id
	} else {
		movie.ID = uuid.New()
	}

	genre, err := parseGenre(params.movie.genre)
	if err != nil {
		return nil, err
	}
	movie.Genre = genre

	if params.movie.released != "" {
		released, err := time.Parse(releasedLayout, params.movie.released)
		if err != nil {
			return nil, fmt.Errorf("invalid release day %q: %w", params.movie.released, err)
		}
		movie.Released = released
	}

	if cmd.Flags().Changed("rating") {
		rating := params.movie.rating
		movie.Rating = &rating
	}

	if params.movie.synopsisFile != "" {
		synopsis, err := afero.ReadFile(appFs, params.movie.synopsisFile)
		if err != nil {
			return nil, fmt.Errorf("reading synopsis: %w", err)
		}
		text := string(synopsis)
		movie.Synopsis = &text
	}
	return movie, nil
}

func init() {
	requireFlags(moviePutCmd,
		append([]string{addPathFlag(moviePutCmd)}, addMovieFlags(moviePutCmd)...)...,
	)
	addMessageFlag(moviePutCmd)

	movieCmd.AddCommand(moviePutCmd)
}
