package git

import "fmt"

const cmdRevParse = "rev-parse"

// RepoRoot returns the absolute path to the repository root.
func RepoRoot(r Runner) (string, error) {
	out, err := r.Run(cmdRevParse, "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return out, nil
}
