package reconcile

import (
	"context"
	"fmt"

	"github.com/conn-castle/pkgstate/internal/oracle"
)

// fakeOracle is an in-memory package database that records every call.
type fakeOracle struct {
	installed   map[string]bool
	failInstall map[string]bool
	failRemove  map[string]bool
	failRefresh bool
	// cascade lists packages that a recursive removal of the key also removes.
	cascade map[string][]string
	// pulls lists dependencies that installing the key also installs.
	pulls map[string][]string
	calls []string
}

func newFakeOracle(installed ...string) *fakeOracle {
	f := &fakeOracle{
		installed:   map[string]bool{},
		failInstall: map[string]bool{},
		failRemove:  map[string]bool{},
		cascade:     map[string][]string{},
		pulls:       map[string][]string{},
	}
	for _, name := range installed {
		f.installed[name] = true
	}
	return f
}

func (f *fakeOracle) IsInstalled(_ context.Context, name string) bool {
	f.calls = append(f.calls, "query "+name)
	return f.installed[name]
}

func (f *fakeOracle) RefreshCache(context.Context) error {
	f.calls = append(f.calls, "refresh")
	if f.failRefresh {
		return &oracle.Error{Kind: oracle.CacheRefreshFailed, Detail: "exit=1"}
	}
	return nil
}

func (f *fakeOracle) Install(_ context.Context, name string, sourceFile string) error {
	if sourceFile != "" {
		f.calls = append(f.calls, fmt.Sprintf("install %s from %s", name, sourceFile))
	} else {
		f.calls = append(f.calls, "install "+name)
	}
	if f.failInstall[name] {
		return &oracle.Error{Kind: oracle.InstallFailed, Package: name, Detail: "target not found: " + name}
	}
	f.installed[name] = true
	for _, dep := range f.pulls[name] {
		f.installed[dep] = true
	}
	return nil
}

func (f *fakeOracle) Remove(_ context.Context, name string, recurse bool) error {
	if recurse {
		f.calls = append(f.calls, "remove -s "+name)
	} else {
		f.calls = append(f.calls, "remove "+name)
	}
	if f.failRemove[name] {
		return &oracle.Error{Kind: oracle.RemoveFailed, Package: name, Detail: "required by other"}
	}
	delete(f.installed, name)
	if recurse {
		for _, dep := range f.cascade[name] {
			delete(f.installed, dep)
		}
	}
	return nil
}

// mutations returns the recorded calls that change state.
func (f *fakeOracle) mutations() []string {
	out := []string{}
	for _, call := range f.calls {
		if len(call) >= 6 && call[:6] == "query " {
			continue
		}
		out = append(out, call)
	}
	return out
}
