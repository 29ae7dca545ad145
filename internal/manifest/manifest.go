// Package manifest reads the package manifest a release is cut from.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// FileName is the default manifest file name.
const FileName = "package.json"

// ErrInvalid is matched by every manifest validation failure.
var ErrInvalid = errors.New("invalid manifest")

// Manifest holds the fields a release needs.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Load reads the manifest at path. Other fields in the file are ignored.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest JSON.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that name is present and version is a semantic version.
func (m *Manifest) Validate() error {
	var errs []error
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if m.Version == "" {
		errs = append(errs, errors.New("version must not be empty"))
	} else if _, err := semver.StrictNewVersion(m.Version); err != nil {
		errs = append(errs, fmt.Errorf("version %q: %w", m.Version, err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// TagName composes the release tag "<name>-v<version>". The package name
// prefix keeps tags of several packages in one repository apart.
func (m *Manifest) TagName() string {
	return m.Name + "-v" + m.Version
}

// CommitMessage is the message of the release commit.
func (m *Manifest) CommitMessage() string {
	return "Release " + m.TagName()
}
