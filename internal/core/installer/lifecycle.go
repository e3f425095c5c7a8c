package installer

import (
	"fmt"
	"os"
	"sort"

	"github.com/blurdev/bpm/internal/core/state"
)

// Remove deletes pkgName's recorded binaries best-effort and drops its
// record. Removing a package that is not installed reports and succeeds.
func (in *Installer) Remove(pkgName string) error {
	return state.Mutate(in.StoreRoot, func(st *state.Store) error {
		rec, ok := st.Remove(pkgName)
		if !ok {
			_, _ = fmt.Fprintf(in.Out, "Package %s is not installed.\n", pkgName)
			return nil
		}
		for _, bin := range rec.Binaries {
			if err := os.Remove(bin); err != nil && !os.IsNotExist(err) {
				_, _ = fmt.Fprintf(in.Err, "Warning: failed to delete %s: %v\n", bin, err)
			}
		}
		_, _ = fmt.Fprintf(in.Out, "Removed package %s\n", pkgName)
		return nil
	})
}

// Update reinstalls pkgName at the latest version in repoName, composed as
// Remove then Install. The pair is not atomic: a crash between the two
// leaves the package uninstalled.
func (in *Installer) Update(repoName, pkgName string) error {
	if err := in.Remove(pkgName); err != nil {
		return err
	}
	return in.Install(repoName, pkgName, "")
}

// InstalledPackage is one entry of the installed-state listing.
type InstalledPackage struct {
	Name string
	state.Record
}

// Installed returns a fresh snapshot of the installed-state store, sorted
// by package name.
func (in *Installer) Installed() ([]InstalledPackage, error) {
	st, err := state.Snapshot(in.StoreRoot)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, st.Len())
	for name := range st.Packages {
		names = append(names, name)
	}
	sort.Strings(names)

	pkgs := make([]InstalledPackage, 0, len(names))
	for _, name := range names {
		pkgs = append(pkgs, InstalledPackage{Name: name, Record: st.Packages[name]})
	}
	return pkgs, nil
}
