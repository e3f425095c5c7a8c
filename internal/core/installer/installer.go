package installer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/blurdev/bpm/internal/core/catalog"
	"github.com/blurdev/bpm/internal/core/manifest"
	"github.com/blurdev/bpm/internal/core/progress"
	"github.com/blurdev/bpm/internal/core/state"
)

// BinDirName is the shared binary directory under the store root. Binaries
// from all packages land here flat-namespaced by filename; packages that
// ship a same-named binary overwrite each other.
const BinDirName = "bins"

var (
	// ErrPackageNotFound indicates the requested package is absent from
	// the repository manifest.
	ErrPackageNotFound = errors.New("package not found")
	// ErrVersionNotFound indicates the requested or selected version is
	// absent among the package's versions.
	ErrVersionNotFound = errors.New("version not found")
)

// Cataloger archives a successfully read installed binary. Catalog
// failures are reported and tolerated; installation never depends on it.
type Cataloger interface {
	Record(name string, data []byte) error
}

// Installer performs dependency-resolved installation against a single
// store root. The manifest and the state document are reloaded fresh on
// every access so concurrent external edits are always visible; nothing
// is cached across operations.
type Installer struct {
	StoreRoot string
	Progress  progress.Sink
	Catalog   Cataloger
	Out       io.Writer
	Err       io.Writer
}

// New returns an Installer rooted at storeRoot with a bbolt catalog, no
// progress rendering, and reporting on stdout/stderr.
func New(storeRoot string) *Installer {
	if abs, err := filepath.Abs(storeRoot); err == nil {
		storeRoot = abs
	}
	return &Installer{
		StoreRoot: storeRoot,
		Progress:  progress.Nop{},
		Catalog:   catalog.New(storeRoot),
		Out:       os.Stdout,
		Err:       os.Stderr,
	}
}

// Install resolves and installs pkgName from repoName, installing its
// transitive dependencies first. version "" selects the ordinal-latest
// version. Structural failures (unreadable or malformed manifest, unknown
// package or version, corrupt state) abort the whole call; dependency
// cycles and per-binary copy failures are reported and do not.
func (in *Installer) Install(repoName, pkgName, version string) error {
	visited := make(map[string]struct{})
	return in.installNode(repoName, pkgName, version, visited)
}

func (in *Installer) installNode(repoName, pkgName, version string, visited map[string]struct{}) error {
	m, err := manifest.Load(in.StoreRoot, repoName)
	if err != nil {
		return err
	}

	versions, ok := m[pkgName]
	if !ok {
		return fmt.Errorf("%w: %q in repo %q", ErrPackageNotFound, pkgName, repoName)
	}
	ver := version
	if ver == "" {
		ver = manifest.Latest(versions)
	}
	pv, ok := versions[ver]
	if !ok {
		return fmt.Errorf("%w: %s:%s in repo %q", ErrVersionNotFound, pkgName, ver, repoName)
	}

	// A node still present in visited is being installed somewhere up the
	// call tree: a genuine cycle. Truncate this branch only. Completed
	// nodes were released on the way out, so a diamond does not land here.
	key := pkgName + ":" + ver
	if _, seen := visited[key]; seen {
		_, _ = fmt.Fprintf(in.Err, "Circular dependency detected at %s\n", key)
		return nil
	}
	visited[key] = struct{}{}
	defer delete(visited, key)

	for _, ref := range pv.Dependencies {
		depName, depVer := manifest.ParseDep(ref)
		st, err := state.Snapshot(in.StoreRoot)
		if err != nil {
			return err
		}
		// Satisfied by name alone: an installed copy at any version
		// counts, even when the reference pins a different one.
		if st.Contains(depName) {
			_, _ = fmt.Fprintf(in.Out, "Dependency %s already installed.\n", depName)
			continue
		}
		_, _ = fmt.Fprintf(in.Out, "Installing dependency %s...\n", depName)
		if err := in.installNode(repoName, depName, depVer, visited); err != nil {
			return err
		}
	}

	binDir := filepath.Join(in.StoreRoot, BinDirName)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("failed to create binary directory %s: %w", binDir, err)
	}

	in.Progress.Begin(len(pv.Binaries), "Installing "+pkgName)
	installed := make([]string, 0, len(pv.Binaries))
	for _, bin := range pv.Binaries {
		src := filepath.Join(pv.Path, bin)
		dest := filepath.Join(binDir, filepath.Base(bin))
		if err := copyFile(src, dest); err != nil {
			// Per-binary failures never abort the install.
			_, _ = fmt.Fprintf(in.Err, "Simulated copy %s -> %s: %v\n", src, dest, err)
		} else if data, err := os.ReadFile(dest); err != nil {
			_, _ = fmt.Fprintf(in.Err, "Warning: failed to read installed binary %s: %v\n", dest, err)
		} else if err := in.Catalog.Record(filepath.Base(bin), data); err != nil {
			_, _ = fmt.Fprintf(in.Err, "Warning: failed to catalog binary %s: %v\n", filepath.Base(bin), err)
		}
		installed = append(installed, dest)
		in.Progress.Advance(1)
	}
	in.Progress.Finish("Installed " + pkgName + " successfully!")

	return state.Mutate(in.StoreRoot, func(st *state.Store) error {
		st.Insert(pkgName, state.Record{Repo: repoName, Version: ver, Binaries: installed})
		return nil
	})
}

func copyFile(src, dest string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	destFile, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(destFile, srcFile); err != nil {
		_ = destFile.Close()
		return err
	}
	return destFile.Close()
}
