package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the repository manifest filename inside each repo
// directory under the store root.
const ManifestName = "packages.mri"

var (
	// ErrUnreadable indicates the manifest file could not be read.
	ErrUnreadable = errors.New("manifest unreadable")
	// ErrMalformed indicates the manifest file exists but does not parse.
	ErrMalformed = errors.New("manifest malformed")
)

// PackageVersion describes one version of one package in a repository
// manifest: where its build artifacts live, which binaries to install,
// and which packages it depends on.
type PackageVersion struct {
	Path         string   `toml:"path"`
	Binaries     []string `toml:"binaries"`
	Dependencies []string `toml:"dependencies"`
}

// Manifest maps package name -> version string -> PackageVersion.
// Version strings are opaque; "latest" means the ordinal maximum key.
type Manifest map[string]map[string]PackageVersion

// Path returns the manifest path for repoName under storeRoot.
func Path(storeRoot, repoName string) string {
	return filepath.Join(storeRoot, repoName, ManifestName)
}

// Load reads and decodes the manifest for repoName. It reads fresh from
// disk on every call so external edits are visible immediately; callers
// must not cache the result across operations.
func Load(storeRoot, repoName string) (Manifest, error) {
	data, err := os.ReadFile(Path(storeRoot, repoName))
	if err != nil {
		return nil, fmt.Errorf("%w: repo %q: %v", ErrUnreadable, repoName, err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: repo %q: %v", ErrMalformed, repoName, err)
	}
	return m, nil
}

// Latest returns the ordinal maximum version key, or "" when versions is
// empty. No semantic-version parsing: "10.0" sorts below "2.0".
func Latest(versions map[string]PackageVersion) string {
	latest := ""
	for v := range versions {
		if v > latest {
			latest = v
		}
	}
	return latest
}

// ParseDep splits a dependency reference of the form "name" or
// "name:version". An absent version means any/latest.
func ParseDep(ref string) (name, version string) {
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// ParseSpec splits a package spec of the form "repo:package[:version]".
func ParseSpec(spec string) (repo, pkg, version string, err error) {
	parts := strings.Split(spec, ":")
	switch len(parts) {
	case 2:
		repo, pkg = parts[0], parts[1]
	case 3:
		repo, pkg, version = parts[0], parts[1], parts[2]
	default:
		return "", "", "", fmt.Errorf("invalid package spec %q, expected repo:package[:version]", spec)
	}
	if repo == "" || pkg == "" {
		return "", "", "", fmt.Errorf("invalid package spec %q, expected repo:package[:version]", spec)
	}
	return repo, pkg, version, nil
}
