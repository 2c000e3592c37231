package desired

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/pkgstate/internal/messages"
)

// archiveSuffixes lists the package file extensions pacman installs with -U.
var archiveSuffixes = []string{
	".pkg.tar.xz",
	".pkg.tar.zst",
	".pkg.tar.gz",
	".pkg.tar",
}

// versionTail matches the version, release and architecture suffix of a package file basename.
var versionTail = regexp.MustCompile(`-[0-9].*$`)

// expandHome is swapped in tests.
var expandHome = homedir.Expand

// PackageSpec is one declared package.
type PackageSpec struct {
	// Name is the logical package name used for queries and removal.
	Name string
	// SourceFile is the local archive to install from; empty means resolve Name from a repository.
	SourceFile string
	// Version is the text stripped from a package file basename, e.g. "1.2.3-1-x86_64".
	Version string
}

// FromFile reports whether the package installs from a local archive.
func (p PackageSpec) FromFile() bool {
	return p.SourceFile != ""
}

// SemVer returns the upstream version of a file-sourced package when it parses as semver.
func (p PackageSpec) SemVer() (*semver.Version, bool) {
	if p.Version == "" {
		return nil, false
	}
	upstream, _, _ := strings.Cut(p.Version, "-")
	v, err := semver.NewVersion(upstream)
	if err != nil {
		return nil, false
	}
	return v, true
}

// String returns the name, with the source file for file-sourced packages.
func (p PackageSpec) String() string {
	if p.FromFile() {
		return p.Name + " (" + p.SourceFile + ")"
	}
	return p.Name
}

// IsPackageFile reports whether raw names a local package archive.
func IsPackageFile(raw string) bool {
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(raw, suffix) {
			return true
		}
	}
	return false
}

// ParseSpec turns one declared value into a PackageSpec.
// Package files keep their path as SourceFile and derive Name from the basename.
func ParseSpec(raw string) (PackageSpec, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return PackageSpec{}, fmt.Errorf("%w: %s", ErrInvalid, messages.ConfigEmptyPackageName)
	}
	if !IsPackageFile(value) {
		return PackageSpec{Name: value}, nil
	}

	path, err := expandHome(value)
	if err != nil {
		return PackageSpec{}, fmt.Errorf("%w: "+messages.ConfigExpandPathFmt, ErrInvalid, value, err)
	}
	name, version := splitPackageFile(filepath.Base(path))
	if name == "" {
		return PackageSpec{}, fmt.Errorf("%w: "+messages.ConfigEmptyDerivedFmt, ErrInvalid, value)
	}
	return PackageSpec{Name: name, SourceFile: path, Version: version}, nil
}

// ParseNames splits comma-separated command-line values and parses each entry in order.
// Empty entries between commas are skipped.
func ParseNames(values []string) ([]PackageSpec, error) {
	var parts []string
	for _, value := range values {
		parts = append(parts, strings.Split(value, ",")...)
	}
	return ParseList(parts)
}

// ParseList parses entries that are already one package each, such as a file's
// packages array. Commas are kept as part of the entry; blank entries are skipped.
func ParseList(values []string) ([]PackageSpec, error) {
	specs := []PackageSpec{}
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		spec, err := ParseSpec(value)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// splitPackageFile separates a package file basename into name and version.
func splitPackageFile(base string) (string, string) {
	loc := versionTail.FindStringIndex(base)
	if loc == nil {
		return trimArchiveSuffix(base), ""
	}
	name := base[:loc[0]]
	version := trimArchiveSuffix(base[loc[0]+1:])
	return name, version
}

func trimArchiveSuffix(value string) string {
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(value, suffix) {
			return strings.TrimSuffix(value, suffix)
		}
	}
	return value
}
