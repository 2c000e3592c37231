package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// It returns the stub path.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) string {
	t.Helper()
	return writeScript(t, dir, name, fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode))
}

// WritePackageManagerStub writes a fake package manager backed by a directory of
// marker files: `-Q name` succeeds when dbDir/name exists, -S/-U create markers,
// -R/-Rs delete them, and -Sy succeeds. Every invocation is appended to logPath.
// Names listed in failing make their install or removal exit 1.
func WritePackageManagerStub(t *testing.T, dir string, dbDir string, logPath string, failing ...string) string {
	t.Helper()
	var fail strings.Builder
	for _, name := range failing {
		fmt.Fprintf(&fail, "  %s) exit 1 ;;\n", name)
	}
	script := fmt.Sprintf(`#!/bin/sh
echo "$*" >> %[2]q
op="$1"
shift
target=""
for arg in "$@"; do
  case "$arg" in
    --noconfirm) ;;
    *) target="$arg" ;;
  esac
done
name=$(basename "$target" | sed 's/-[0-9].*$//')
case "$op" in
  -Q) [ -f %[1]q/"$target" ]; exit $? ;;
  -Sy) exit 0 ;;
esac
case "$name" in
%[3]s  *) ;;
esac
case "$op" in
  -S|-U) touch %[1]q/"$name" ;;
  -R|-Rs) [ -f %[1]q/"$name" ] || { echo "error: target not found: $name" >&2; exit 1; }; rm -f %[1]q/"$name" ;;
  *) echo "unsupported $op" >&2; exit 2 ;;
esac
`, dbDir, logPath, fail.String())
	return writeScript(t, dir, "pacman", script)
}

// ReadLines returns the non-empty lines of path, or nil when it does not exist.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func writeScript(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}
