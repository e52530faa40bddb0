// Package action holds the demonstration server action called by the form
// validation flow once a submission is valid.
package action

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-uidemo/internal/logging"
)

const (
	DefaultDelay       = time.Second
	DefaultProjectFile = "uidemo.yaml"
)

// ErrNoProjectName is returned when the project file has no name.
var ErrNoProjectName = errors.New("action: project file has no name")

// Project is the part of the project file the action reads.
type Project struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Options configures an Action.
type Options struct {
	Delay       time.Duration
	ProjectFile string
	Logger      *logging.Logger
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// WithDelay sets the artificial delay before the action runs.
func WithDelay(d time.Duration) OptionFn {
	return func(o *Options) {
		if d >= 0 {
			o.Delay = d
		}
	}
}

// WithProjectFile sets the project file read on every call.
func WithProjectFile(path string) OptionFn {
	return func(o *Options) {
		if path != "" {
			o.ProjectFile = path
		}
	}
}

// WithLogger sets the logger values are written to.
func WithLogger(l *logging.Logger) OptionFn {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Action waits, reads the project file and logs the submitted data.
type Action struct {
	opts Options
}

// New builds an action with defaults applied.
func New(opts ...OptionFn) *Action {
	o := Options{
		Delay:       DefaultDelay,
		ProjectFile: DefaultProjectFile,
		Logger:      logging.Nop(),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return &Action{opts: o}
}

// Run executes the action for data. It honours ctx during the delay.
func (a *Action) Run(ctx context.Context, data any) (Project, error) {
	if a.opts.Delay > 0 {
		timer := time.NewTimer(a.opts.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Project{}, fmt.Errorf("action: %w", ctx.Err())
		case <-timer.C:
		}
	}

	raw, err := os.ReadFile(a.opts.ProjectFile)
	if err != nil {
		return Project{}, fmt.Errorf("action: read project file: %w", err)
	}
	var project Project
	if err := yaml.Unmarshal(raw, &project); err != nil {
		return Project{}, fmt.Errorf("action: parse %s: %w", a.opts.ProjectFile, err)
	}
	if project.Name == "" {
		return Project{}, ErrNoProjectName
	}

	log := a.opts.Logger.WithFields(map[string]any{"project_file": a.opts.ProjectFile})
	log.Debug(string(raw))
	log.WithFields(map[string]any{"project": project.Name}).Info("project loaded")
	log.WithFields(map[string]any{"data": data}).Info("server action data")
	return project, nil
}
