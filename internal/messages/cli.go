package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse = "pkgstate"
	// RootShort is the short description for the root command.
	RootShort       = "Reconcile installed packages against a declared state"
	RootVersionFlag = "Print version and exit"
	RootVerboseFlag = "Log package manager commands to stderr"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// ApplyUse is the apply command name.
	ApplyUse   = "apply"
	ApplyShort = "Install or remove packages until the host matches the desired state"
	ApplyLong  = `Install or remove packages until the host matches the desired state.

Packages are processed one at a time in the order they are declared. The first
failure stops the run; packages already changed stay changed.

Names ending in a package archive suffix (for example foo-1.2.3-1-x86_64.pkg.tar.zst)
are installed from the local file.`

	// StatusUse is the status command name.
	StatusUse   = "status"
	StatusShort = "Show whether each declared package is installed"

	FlagName        = "Package names or package files (comma-separated, repeatable)"
	FlagState       = "Desired state: present, installed, absent or removed"
	FlagRecurse     = "When removing, also remove dependencies that are no longer needed"
	FlagUpdateCache = "Refresh the package index before acting"
	FlagCheck       = "Report what would change without changing anything"
	FlagFile        = "TOML file declaring the desired state"
	FlagDiff        = "Show a diff of the declared packages' installed state"
	FlagJSON        = "Print the result as JSON"
	FlagAsk         = "Ask for confirmation before changing anything"
	FlagPacman      = "Path to the pacman binary"

	// StatusInstalledFmt formats one installed package line for status output.
	StatusInstalledFmt = "%s: installed\n"
	StatusAbsentFmt    = "%s: absent\n"
	StatusSourceFmt    = "  source: %s\n"
	StatusVersionFmt   = "  version: %s\n"

	// ConfirmPlanHeader introduces the planned changes before --ask prompts.
	ConfirmPlanHeader      = "Planned changes:"
	ConfirmPlanLineFmt     = "  %s %s\n"
	ConfirmPromptFmt       = "%s %d package(s)?"
	ConfirmRequiresTerm    = "--ask requires an interactive terminal"
	ConfirmPromptFailedFmt = "confirmation prompt: %w"
)
