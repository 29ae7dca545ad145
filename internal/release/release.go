// Package release cuts a release commit and tag from a package manifest.
//
// A release is three git invocations run strictly in order: stage the
// release files, commit them, tag the commit. The first failure stops the
// run. Nothing is rolled back, so a failed tag leaves the commit in place.
package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lugassawan/lintcfg/internal/git"
	lintlog "github.com/lugassawan/lintcfg/internal/log"
	"github.com/lugassawan/lintcfg/internal/manifest"
)

// DefaultFiles are staged when Releaser.Files is empty.
var DefaultFiles = []string{manifest.FileName, "CHANGELOG.md"}

// Step names one git invocation of a release.
type Step string

const (
	StepAdd    Step = "add"
	StepCommit Step = "commit"
	StepTag    Step = "tag"
)

// StepError reports the step that failed and the steps that had already
// succeeded before it.
type StepError struct {
	Step      Step
	Completed []Step
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("release step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Command is one planned git invocation.
type Command struct {
	Step Step
	Args []string

	run func(git.Runner) error
}

// String renders the command as a shell line.
func (c Command) String() string {
	return git.CommandLine(c.Args...)
}

// Plan is the full set of commands a release would run.
type Plan struct {
	Tag      string
	Message  string
	Commands []Command
}

// Result describes a completed release.
type Result struct {
	Tag       string   `json:"tag"`
	Message   string   `json:"message"`
	Files     []string `json:"files"`
	Completed []Step   `json:"completed"`
}

// Releaser runs release steps through a git.Runner.
type Releaser struct {
	Runner git.Runner
	// Dir is the package directory the commands run in. Empty means the runner's
	// own directory.
	Dir string

	Files       []string
	Lightweight bool
	Logger      *zerolog.Logger
}

func (r *Releaser) files() []string {
	if len(r.Files) == 0 {
		return DefaultFiles
	}
	return r.Files
}

func (r *Releaser) logger() zerolog.Logger {
	if r.Logger != nil {
		return *r.Logger
	}
	return lintlog.WithComponent("release")
}

// Plan returns the commands Run would execute for m.
func (r *Releaser) Plan(m *manifest.Manifest) Plan {
	tag := m.TagName()
	msg := m.CommitMessage()

	tagMsg := msg
	if r.Lightweight {
		tagMsg = ""
	}

	files := r.files()
	return Plan{
		Tag:     tag,
		Message: msg,
		Commands: []Command{
			{
				Step: StepAdd,
				Args: git.AddArgs(files...),
				run:  func(g git.Runner) error { return git.Add(g, files...) },
			},
			{
				Step: StepCommit,
				Args: git.CommitArgs(msg),
				run:  func(g git.Runner) error { return git.Commit(g, msg) },
			},
			{
				Step: StepTag,
				Args: git.TagArgs(tag, tagMsg),
				run:  func(g git.Runner) error { return git.Tag(g, tag, tagMsg) },
			},
		},
	}
}

// Run validates m and executes the plan. Cancelling ctx stops the run
// between steps.
func (r *Releaser) Run(ctx context.Context, m *manifest.Manifest) (*Result, error) {
	if r.Runner == nil {
		return nil, errors.New("release: no git runner configured")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	plan := r.Plan(m)
	runner := git.InDir(r.Runner, r.Dir)
	log := r.logger()
	res := &Result{Tag: plan.Tag, Message: plan.Message, Files: r.files()}

	for _, c := range plan.Commands {
		if err := ctx.Err(); err != nil {
			return res, &StepError{Step: c.Step, Completed: res.Completed, Err: err}
		}
		log.Debug().Str("step", string(c.Step)).Str("cmd", c.String()).Msg("running")
		if err := c.run(runner); err != nil {
			log.Error().Err(err).Str("step", string(c.Step)).Msg("release halted")
			return res, &StepError{Step: c.Step, Completed: res.Completed, Err: err}
		}
		res.Completed = append(res.Completed, c.Step)
	}

	log.Info().Str("tag", plan.Tag).Msg("release tagged")
	return res, nil
}
