package git

import (
	"errors"
	"slices"
)

// AddArgs stages the given paths.
func AddArgs(paths ...string) []string {
	return append([]string{"add", "--"}, paths...)
}

// CommitArgs records the staged changes with message.
func CommitArgs(message string) []string {
	return []string{"commit", "--message", message}
}

// TagArgs creates tag name at HEAD. A non-empty message makes the tag
// annotated; an empty one creates a lightweight tag.
func TagArgs(name, message string) []string {
	if message == "" {
		return []string{"tag", name}
	}
	return []string{"tag", "--annotate", name, "--message", message}
}

// Add stages paths. Empty path lists and empty paths are rejected before
// git runs.
func Add(r Runner, paths ...string) error {
	if len(paths) == 0 {
		return errors.New("git add: no paths given")
	}
	if slices.Contains(paths, "") {
		return errors.New("git add: empty path")
	}
	_, err := r.Run(AddArgs(paths...)...)
	return err
}

// Commit records the staged changes.
func Commit(r Runner, message string) error {
	_, err := r.Run(CommitArgs(message)...)
	return err
}

// Tag creates a tag at HEAD. See TagArgs for the meaning of message.
func Tag(r Runner, name, message string) error {
	_, err := r.Run(TagArgs(name, message)...)
	return err
}

// InDir returns a Runner whose Run executes in dir through r.RunInDir.
// An empty dir returns r unchanged.
func InDir(r Runner, dir string) Runner {
	if dir == "" {
		return r
	}
	return &dirRunner{Runner: r, dir: dir}
}

type dirRunner struct {
	Runner
	dir string
}

func (d *dirRunner) Run(args ...string) (string, error) {
	return d.RunInDir(d.dir, args...)
}
