package cmd

import (
	"context"
	"errors"
	"strings"
	"text/template"
	"time"

	"github.com/docker/go-units"
	"github.com/oneconcern/verstore/pkg/core"
	"github.com/oneconcern/verstore/pkg/core/status"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
	"gopkg.in/yaml.v2"
)

// movieView is a printable movie
type movieView struct {
	Path         string    `yaml:"path"`
	Revision     string    `yaml:"revision"`
	ID           string    `yaml:"id"`
	Title        string    `yaml:"title"`
	Year         int       `yaml:"year,omitempty"`
	Released     string    `yaml:"released,omitempty"`
	Genre        string    `yaml:"genre"`
	Cast         []string  `yaml:"cast,omitempty"`
	Rating       *float32  `yaml:"rating,omitempty"`
	Synopsis     string    `yaml:"synopsis,omitempty"`
	SynopsisSize string    `yaml:"-"`
	Message      string    `yaml:"message,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}

func newMovieView(path string, commit model.CommitInfo, m *Movie) movieView {
	v := movieView{
		Path:      path,
		Revision:  commit.Revision.String(),
		Message:   commit.Message,
		Timestamp: commit.Timestamp,
		ID:        m.ID.String(),
		Title:     m.Title,
		Year:      m.Year,
		Genre:     m.Genre.String(),
		Cast:      m.Cast,
		Rating:    m.Rating,
	}
	if !m.Released.IsZero() {
		v.Released = m.Released.Format(releasedLayout)
	}
	if m.Synopsis != nil {
		v.Synopsis = *m.Synopsis
	}
	v.SynopsisSize = units.HumanSize(float64(len(v.Synopsis)))
	return v
}

var movieGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Read a movie",
	Long: `Read a movie saved at some path, at the latest revision or at some former one.

Exits with ENOENT status when no movie exists at this path and revision.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		s, _, err := openStore(ctx)
		if err != nil {
			wrapFatalln("open store", err)
			return
		}
		defer func() { _ = s.Close() }()

		rev, err := model.ParseRevision(params.movie.revision)
		if err != nil {
			wrapFatalln("invalid revision", err)
			return
		}
		// resolve HEAD once, so the movie and its commit info match
		commit, err := s.Log(ctx, rev)
		if err != nil {
			wrapFatalln("read revision log", err)
			return
		}
		rev = commit.Revision

		movie, err := core.Read[Movie](ctx, s.NewReader(), params.movie.path, rev)
		if err != nil {
			if errors.Is(err, status.ErrMissingObject) {
				wrapFatalWithCodef(int(unix.ENOENT), "didn't find a movie at %q, revision %v", params.movie.path, rev)
				return
			}
			wrapFatalln("read movie", err)
			return
		}

		view := newMovieView(params.movie.path, commit, movie)
		if params.output.format == formatYAML {
			o, err := yaml.Marshal(view)
			if err != nil {
				wrapFatalln("serialize movie to yaml", err)
				return
			}
			_, _ = stdout.Write(o)
			return
		}

		t, err := movieTemplate(params.output.template)
		if err != nil {
			wrapFatalln("invalid template", err)
			return
		}
		if err = t.Execute(stdout, view); err != nil {
			wrapFatalln("executing template", err)
			return
		}
	},
}

const movieTemplateString = `{{.Title}}{{if .Year}} ({{.Year}}){{end}}
 Revision: {{.Revision}}, {{.Message}}
       ID: {{.ID}}
    Genre: {{.Genre}}
{{- if .Released}}
 Released: {{.Released}}{{end}}
{{- if .Cast}}
     Cast: {{join .Cast ", "}}{{end}}
{{- if .Rating}}
   Rating: {{deref .Rating}}{{end}}
 Synopsis: {{.SynopsisSize}}
{{if .Synopsis}}
{{.Synopsis}}
{{end}}`

func movieTemplate(text string) (*template.Template, error) {
	if text == "" {
		text = movieTemplateString
	}
	return template.New("movie").Funcs(template.FuncMap{
		"join":  strings.Join,
		"deref": func(f *float32) float32 { return *f },
	}).Parse(text)
}

func init() {
	requireFlags(movieGetCmd,
		addPathFlag(movieGetCmd),
	)
	addRevisionFlag(movieGetCmd)
	addFormatFlags(movieGetCmd)

	movieCmd.AddCommand(movieGetCmd)
}
