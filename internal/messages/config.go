package messages

// Config messages for desired-state loading and validation.
const (
	// ConfigMissingFileFmt formats missing desired-state file errors.
	ConfigMissingFileFmt     = "missing desired-state file %s: %w"
	ConfigInvalidFileFmt     = "invalid desired-state file %s: %w"
	ConfigUnrecognizedKeys   = "unrecognized keys in %s: %w"
	ConfigInvalidEnvFmt      = "parse environment: %w"
	ConfigInvalidStateFmt    = "invalid state %q (expected present, installed, absent or removed)"
	ConfigNothingRequested   = "one of name or update_cache is required"
	ConfigEmptyPackageName   = "package name is empty"
	ConfigEmptyDerivedFmt    = "cannot derive a package name from %q"
	ConfigExpandPathFmt      = "expand path %q: %w"
	ConfigInvalidLogLevelFmt = "invalid log level %q"
)
