// Copyright © 2018 One Concern

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type flagsT struct {
	root struct {
		store    string
		logLevel string
		message  string
	}
	movie struct {
		path         string
		id           string
		title        string
		year         int
		released     string
		genre        string
		cast         []string
		rating       float32
		synopsisFile string
		revision     string
	}
	output struct {
		format   string
		template string
	}
	config struct {
		path string
	}
}

var params flagsT

const (
	formatText = "text"
	formatYAML = "yaml"

	releasedLayout = "2006-01-02"
)

func addStoreFlag(cmd *cobra.Command) string {
	store := "store"
	cmd.PersistentFlags().StringVar(&params.root.store, store, "", "The URL of the versioned store: mem://<name>, badger://<dir> or badger+mem://")
	return store
}

func addLogLevelFlag(cmd *cobra.Command) string {
	loglevel := "loglevel"
	cmd.PersistentFlags().StringVar(&params.root.logLevel, loglevel, "", "The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	return loglevel
}

func addMessageFlag(cmd *cobra.Command) string {
	message := "message"
	cmd.Flags().StringVarP(&params.root.message, message, "m", "", "The message recorded with the new revision")
	return message
}

func addPathFlag(cmd *cobra.Command) string {
	path := "path"
	cmd.Flags().StringVarP(&params.movie.path, path, "p", "", "The path of the object in the store, e.g. films/wild-things")
	return path
}

func addMovieFlags(cmd *cobra.Command) []string {
	fs := cmd.Flags()
	fs.StringVar(&params.movie.id, "id", "", "The movie UUID. A new one is generated when omitted")
	fs.StringVar(&params.movie.title, "title", "", "The movie title")
	fs.IntVar(&params.movie.year, "year", 0, "The release year")
	fs.StringVar(&params.movie.released, "released", "", "The release day, as "+releasedLayout)
	fs.StringVar(&params.movie.genre, "genre", "", fmt.Sprintf("The movie genre, one of %v", genreNames()))
	fs.StringSliceVar(&params.movie.cast, "cast", nil, "Cast members, comma separated or repeated")
	fs.Float32Var(&params.movie.rating, "rating", 0, "A rating. The rating is not stored when omitted")
	fs.StringVar(&params.movie.synopsisFile, "synopsis-file", "", "A text file holding the synopsis")
	return []string{"title", "genre"}
}

func addRevisionFlag(cmd *cobra.Command) string {
	revision := "revision"
	cmd.Flags().StringVarP(&params.movie.revision, revision, "r", "HEAD", "The revision to read from: a revision number, or HEAD for the latest")
	return revision
}

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&params.output.format, "format", formatText, "The output format: text or yaml")
	cmd.Flags().StringVar(&params.output.template, "template", "", "A go template to render text output")
}

func addConfigPathFlag(cmd *cobra.Command) string {
	path := "output"
	cmd.Flags().StringVarP(&params.config.path, path, "o", "", "Where to write the config. Defaults to $HOME/.verstore/verstore.yaml")
	return path
}

func requireFlags(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		err := cmd.MarkFlagRequired(flag)
		if err != nil {
			err = cmd.MarkPersistentFlagRequired(flag)
		}
		if err != nil {
			wrapFatalln(fmt.Sprintf("error attempting to mark the required flag %q", flag), err)
			return
		}
	}
}
