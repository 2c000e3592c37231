package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/pkgstate/internal/desired"
)

func specs(names ...string) []desired.PackageSpec {
	out := make([]desired.PackageSpec, 0, len(names))
	for _, name := range names {
		out = append(out, desired.PackageSpec{Name: name})
	}
	return out
}

func TestRunInstallsMissingPackage(t *testing.T) {
	fake := newFakeOracle()
	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages: specs("foo"),
		Target:   desired.Present,
	}, false)

	assert.True(t, outcome.Changed)
	assert.Equal(t, 1, outcome.Count)
	assert.Equal(t, "installed 1 package(s)", outcome.Message)
	assert.Nil(t, outcome.Failure)
	assert.Equal(t, []string{"install foo"}, fake.mutations())
	assert.Equal(t, []string{}, outcome.Diff.Before)
	assert.Equal(t, []string{"foo"}, outcome.Diff.After)
}

func TestRunRemovesWithRecurse(t *testing.T) {
	fake := newFakeOracle("baz")
	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages: specs("baz"),
		Target:   desired.Absent,
		Recurse:  true,
	}, false)

	assert.True(t, outcome.Changed)
	assert.Equal(t, 1, outcome.Count)
	assert.Equal(t, "removed 1 package(s)", outcome.Message)
	assert.Equal(t, []string{"remove -s baz"}, fake.mutations())
	assert.Equal(t, []string{"baz"}, outcome.Diff.Before)
	assert.Empty(t, outcome.Diff.After)
}

func TestRunRefreshOnly(t *testing.T) {
	fake := newFakeOracle()
	outcome := New(fake).Run(context.Background(), desired.DesiredState{RefreshCache: true}, false)

	assert.True(t, outcome.Changed)
	assert.Equal(t, "updated the package master lists", outcome.Message)
	assert.Equal(t, []string{"refresh"}, fake.calls)
}

func TestRunRefreshOnlyCheckMode(t *testing.T) {
	fake := newFakeOracle()
	outcome := New(fake).Run(context.Background(), desired.DesiredState{RefreshCache: true}, true)

	assert.True(t, outcome.Changed)
	assert.Equal(t, "would have updated the package cache", outcome.Message)
	assert.Empty(t, fake.calls)
}

func TestRunNothingDeclared(t *testing.T) {
	fake := newFakeOracle()
	outcome := New(fake).Run(context.Background(), desired.DesiredState{}, false)
	assert.False(t, outcome.Changed)
	assert.Empty(t, fake.calls)
}

func TestRunRefreshFailureStopsBeforeQueries(t *testing.T) {
	fake := newFakeOracle()
	fake.failRefresh = true
	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages:     specs("foo"),
		RefreshCache: true,
	}, false)

	require.True(t, outcome.Failed())
	assert.Equal(t, "could not update package db", outcome.Message)
	assert.Empty(t, outcome.Failure.Package)
	assert.Equal(t, "exit=1", outcome.Failure.Detail)
	assert.Equal(t, []string{"refresh"}, fake.calls)
}

func TestRunRefreshThenInstall(t *testing.T) {
	fake := newFakeOracle()
	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages:     specs("foo"),
		RefreshCache: true,
	}, false)

	assert.True(t, outcome.Changed)
	assert.Equal(t, []string{"refresh", "query foo", "query foo", "install foo"}, fake.calls)
}

func TestRunAlreadyInstalledMakesNoInstallCalls(t *testing.T) {
	fake := newFakeOracle("a", "b")
	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages: specs("a", "b"),
		Target:   desired.Present,
	}, false)

	assert.False(t, outcome.Changed)
	assert.Equal(t, 0, outcome.Count)
	assert.Equal(t, "package(s) already installed", outcome.Message)
	assert.Empty(t, fake.mutations())
}

func TestRunAlreadyAbsentMakesNoRemoveCalls(t *testing.T) {
	fake := newFakeOracle()
	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages: specs("a", "b"),
		Target:   desired.Absent,
	}, false)

	assert.False(t, outcome.Changed)
	assert.Equal(t, "package(s) already absent", outcome.Message)
	assert.Empty(t, fake.mutations())
}

func TestRunIsIdempotent(t *testing.T) {
	fake := newFakeOracle("b")
	state := desired.DesiredState{Packages: specs("a", "b", "c"), Target: desired.Present}
	r := New(fake)

	first := r.Run(context.Background(), state, false)
	require.True(t, first.Changed)
	assert.Equal(t, 2, first.Count)

	second := r.Run(context.Background(), state, false)
	assert.False(t, second.Changed)
	assert.Equal(t, []string{"install a", "install c"}, fake.mutations())
}

func TestRunInstallFailFast(t *testing.T) {
	fake := newFakeOracle()
	fake.failInstall["B"] = true
	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages: specs("A", "B", "C"),
		Target:   desired.Present,
	}, false)

	require.True(t, outcome.Failed())
	assert.Equal(t, "B", outcome.Failure.Package)
	assert.Equal(t, "failed to install B", outcome.Message)
	assert.Equal(t, "target not found: B", outcome.Failure.Detail)
	assert.Equal(t, []string{"install A", "install B"}, fake.mutations())
	assert.True(t, fake.installed["A"])
	assert.False(t, fake.installed["C"])
	assert.True(t, outcome.Changed)
	assert.Equal(t, 1, outcome.Count)
	assert.Equal(t, []string{"A"}, outcome.Diff.After)
}

func TestRunInstallSkipsPackagesPulledInAsDependencies(t *testing.T) {
	fake := newFakeOracle()
	fake.pulls["a"] = []string{"b"}
	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages: specs("a", "b"),
		Target:   desired.Present,
	}, false)

	assert.False(t, outcome.Failed())
	assert.True(t, outcome.Changed)
	assert.Equal(t, 1, outcome.Count)
	assert.Equal(t, "installed 1 package(s)", outcome.Message)
	assert.Equal(t, []string{"install a"}, fake.mutations())
	assert.Equal(t, []string{
		"query a", "query b",
		"query a", "install a",
		"query b",
	}, fake.calls)
	assert.Equal(t, []string{"a", "b"}, outcome.Diff.After)
}

func TestRunDuplicateDeclarationsActOnce(t *testing.T) {
	tests := []struct {
		name      string
		installed []string
		target    desired.TargetState
		message   string
		mutations []string
	}{
		{name: "install", target: desired.Present, message: "installed 1 package(s)", mutations: []string{"install foo"}},
		{name: "remove", installed: []string{"foo"}, target: desired.Absent, message: "removed 1 package(s)", mutations: []string{"remove foo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := desired.DesiredState{Packages: specs("foo", "foo"), Target: tt.target}

			check := New(newFakeOracle(tt.installed...)).Run(context.Background(), state, true)
			assert.Equal(t, 1, check.Count)

			fake := newFakeOracle(tt.installed...)
			outcome := New(fake).Run(context.Background(), state, false)
			assert.Equal(t, 1, outcome.Count)
			assert.Equal(t, tt.message, outcome.Message)
			assert.Equal(t, tt.mutations, fake.mutations())
		})
	}
}

func TestRunRemoveFailFast(t *testing.T) {
	fake := newFakeOracle("A", "B", "C")
	fake.failRemove["B"] = true
	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages: specs("A", "B", "C"),
		Target:   desired.Absent,
	}, false)

	require.True(t, outcome.Failed())
	assert.Equal(t, "B", outcome.Failure.Package)
	assert.Equal(t, "failed to remove B", outcome.Message)
	assert.Equal(t, []string{"remove A", "remove B"}, fake.mutations())
	assert.True(t, fake.installed["C"])
	assert.Equal(t, []string{"B", "C"}, outcome.Diff.After)
}

func TestRunRemoveSkipsPackagesTakenByCascade(t *testing.T) {
	fake := newFakeOracle("app", "lib")
	fake.cascade["app"] = []string{"lib"}
	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages: specs("app", "lib"),
		Target:   desired.Absent,
		Recurse:  true,
	}, false)

	assert.False(t, outcome.Failed())
	assert.True(t, outcome.Changed)
	assert.Equal(t, 1, outcome.Count)
	assert.Equal(t, []string{"remove -s app"}, fake.mutations())
	assert.Equal(t, []string{
		"query app", "query lib",
		"query app", "remove -s app",
		"query lib",
	}, fake.calls)
	assert.Empty(t, outcome.Diff.After)
}

func TestRunInstallFromFileUsesDerivedName(t *testing.T) {
	spec, err := desired.ParseSpec("/tmp/foo-1.2.3.pkg.tar.xz")
	require.NoError(t, err)
	fake := newFakeOracle()

	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages: []desired.PackageSpec{spec},
		Target:   desired.Present,
	}, false)

	assert.True(t, outcome.Changed)
	assert.Equal(t, []string{"query foo", "query foo", "install foo from /tmp/foo-1.2.3.pkg.tar.xz"}, fake.calls)
	assert.True(t, fake.installed["foo"])
}

func TestRunCheckModeNeverMutates(t *testing.T) {
	tests := []struct {
		name      string
		installed []string
		state     desired.DesiredState
		changed   bool
		count     int
		message   string
	}{
		{
			name:    "would install",
			state:   desired.DesiredState{Packages: specs("a", "b"), Target: desired.Present, RefreshCache: true},
			changed: true,
			count:   2,
			message: "2 package(s) would be installed",
		},
		{
			name:      "would remove",
			installed: []string{"a"},
			state:     desired.DesiredState{Packages: specs("a", "b"), Target: desired.Absent, Recurse: true},
			changed:   true,
			count:     1,
			message:   "1 package(s) would be removed",
		},
		{
			name:      "nothing to install",
			installed: []string{"a"},
			state:     desired.DesiredState{Packages: specs("a"), Target: desired.Present},
			message:   "package(s) already installed",
		},
		{
			name:    "nothing to remove",
			state:   desired.DesiredState{Packages: specs("a"), Target: desired.Absent},
			message: "package(s) already absent",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeOracle(tt.installed...)
			outcome := New(fake).Run(context.Background(), tt.state, true)

			assert.Equal(t, tt.changed, outcome.Changed)
			assert.Equal(t, tt.count, outcome.Count)
			assert.Equal(t, tt.message, outcome.Message)
			assert.Empty(t, fake.mutations())
		})
	}
}

func TestRunCheckModeDiffPredictsAfterState(t *testing.T) {
	fake := newFakeOracle("b")
	outcome := New(fake).Run(context.Background(), desired.DesiredState{
		Packages: specs("a", "b"),
		Target:   desired.Present,
	}, true)

	assert.Equal(t, []string{"b"}, outcome.Diff.Before)
	assert.Equal(t, []string{"a", "b"}, outcome.Diff.After)
}

func TestRunConfirmDeclined(t *testing.T) {
	fake := newFakeOracle()
	var asked []string
	r := New(fake, WithConfirm(func(target desired.TargetState, pending []PackageStatus) (bool, error) {
		assert.Equal(t, desired.Present, target)
		for _, status := range pending {
			asked = append(asked, status.Spec.Name)
		}
		return false, nil
	}))

	outcome := r.Run(context.Background(), desired.DesiredState{Packages: specs("a", "b")}, false)
	assert.False(t, outcome.Changed)
	assert.Equal(t, "aborted by user", outcome.Message)
	assert.Equal(t, []string{"a", "b"}, asked)
	assert.Empty(t, fake.mutations())
}

func TestRunConfirmError(t *testing.T) {
	fake := newFakeOracle()
	r := New(fake, WithConfirm(func(desired.TargetState, []PackageStatus) (bool, error) {
		return false, errors.New("no tty")
	}))

	outcome := r.Run(context.Background(), desired.DesiredState{Packages: specs("a")}, false)
	require.True(t, outcome.Failed())
	assert.Equal(t, "no tty", outcome.Failure.Detail)
	assert.Empty(t, fake.mutations())
}

func TestRunConfirmSkippedWhenNothingPending(t *testing.T) {
	fake := newFakeOracle("a")
	r := New(fake, WithConfirm(func(desired.TargetState, []PackageStatus) (bool, error) {
		t.Fatal("confirm should not be called")
		return false, nil
	}))

	outcome := r.Run(context.Background(), desired.DesiredState{Packages: specs("a")}, false)
	assert.False(t, outcome.Changed)
}

func TestRunConfirmSkippedInCheckMode(t *testing.T) {
	fake := newFakeOracle()
	r := New(fake, WithConfirm(func(desired.TargetState, []PackageStatus) (bool, error) {
		t.Fatal("confirm should not be called")
		return false, nil
	}))

	outcome := r.Run(context.Background(), desired.DesiredState{Packages: specs("a")}, true)
	assert.True(t, outcome.Changed)
}
