package moduleid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	ErrEmptyOrganization = errors.New("empty organization")
	ErrEmptyPackageName  = errors.New("empty package name")
	ErrInvalidVersion    = errors.New("invalid version")
	ErrInvalidCharacter  = errors.New("invalid character")
)

// A ModuleIdentifier identifies a versioned module: organization/package:version.
// Two identifiers are equal iff all their components are equal, the type is comparable
// and can be used as a map key.
type ModuleIdentifier struct {
	Org     string `json:"org"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

func New(org, name, version string) (ModuleIdentifier, error) {
	id := ModuleIdentifier{Org: org, Name: name, Version: version}
	if err := id.Validate(); err != nil {
		return ModuleIdentifier{}, err
	}
	return id, nil
}

func MustNew(org, name, version string) ModuleIdentifier {
	id, err := New(org, name, version)
	if err != nil {
		panic(err)
	}
	return id
}

// Parse parses the org/name:version form, the version is required.
func Parse(s string) (ModuleIdentifier, error) {
	org, rest, ok := strings.Cut(s, "/")
	if !ok {
		return ModuleIdentifier{}, fmt.Errorf("%q: missing '/' after the organization", s)
	}
	name, version, ok := strings.Cut(rest, ":")
	if !ok {
		return ModuleIdentifier{}, fmt.Errorf("%q: missing ':' before the version", s)
	}
	id, err := New(org, name, version)
	if err != nil {
		return ModuleIdentifier{}, fmt.Errorf("%q: %w", s, err)
	}
	return id, nil
}

func (id ModuleIdentifier) IsZero() bool {
	return id == ModuleIdentifier{}
}

// Validate checks every component: the organization is made of [A-Za-z0-9_] characters,
// the package name of dot-separated non-empty segments of such characters and the version
// must be a valid (possibly partial) semantic version made of digits and dots.
func (id ModuleIdentifier) Validate() error {
	if id.Org == "" {
		return ErrEmptyOrganization
	}
	for _, r := range id.Org {
		if !IsIdentChar(r) {
			return fmt.Errorf("%w %q in organization", ErrInvalidCharacter, r)
		}
	}

	if id.Name == "" {
		return ErrEmptyPackageName
	}
	for _, segment := range strings.Split(id.Name, ".") {
		if segment == "" {
			return fmt.Errorf("%w: empty segment in package name %q", ErrEmptyPackageName, id.Name)
		}
		for _, r := range segment {
			if !IsIdentChar(r) {
				return fmt.Errorf("%w %q in package name", ErrInvalidCharacter, r)
			}
		}
	}

	return ValidateVersion(id.Version)
}

// ValidateVersion checks that version only contains digits and dots and is
// accepted by the semver parser (1, 1.0 and 1.0.0 are valid, 1..0 and 1.0.0.0 are not).
func ValidateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: empty", ErrInvalidVersion)
	}
	for _, r := range version {
		if r != '.' && !IsDigit(r) {
			return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
		}
	}
	if _, err := semver.NewVersion(version); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidVersion, version, err)
	}
	return nil
}

// ModulePath returns org/name.
func (id ModuleIdentifier) ModulePath() string {
	return id.Org + "/" + id.Name
}

// LastNameSegment returns the part of the package name after the last dot.
func (id ModuleIdentifier) LastNameSegment() string {
	index := strings.LastIndexByte(id.Name, '.')
	return id.Name[index+1:]
}

func (id ModuleIdentifier) String() string {
	return id.Org + "/" + id.Name + ":" + id.Version
}

// Compare orders identifiers by organization, name and then version string.
func Compare(a, b ModuleIdentifier) int {
	if c := strings.Compare(a.Org, b.Org); c != 0 {
		return c
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.Version, b.Version)
}

func IsIdentChar(r rune) bool {
	return r == '_' || IsDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
