package messages

// Oracle and lock messages for package manager interactions.
const (
	// OracleMissingFmt reports that the package manager binary cannot be found.
	OracleMissingFmt        = "package manager %q not found: %w"
	OracleRunnerRequired    = "command runner is required"
	OracleCommandDetailFmt  = "cmd=%s args=%q exit=%d stdout=%q stderr=%q"
	OracleErrorFmt          = "%s: %s"
	OracleErrorPackageFmt   = "%s %s: %s"
	OracleCacheRefreshLabel = "cache refresh failed"
	OracleInstallLabel      = "install failed"
	OracleRemoveLabel       = "remove failed"

	// LockOpenFmt formats lock file open errors.
	LockOpenFmt        = "open lock %s: %w"
	LockAcquireFmt     = "lock %s: %w"
	LockTimeoutFmt     = "timed out after %s waiting for another pkgstate run to finish"
	LockCreateDirFmt   = "create lock dir: %w"
	LockDefaultName    = "pkgstate.lock"
	LockReleaseFailFmt = "release lock %s: %v"
)
