package messages

// Reconcile messages reported in outcomes.
const (
	// ReconcileCacheUpdated reports a cache refresh with no packages declared.
	ReconcileCacheUpdated      = "updated the package master lists"
	ReconcileCacheWouldUpdate  = "would have updated the package cache"
	ReconcileCacheRefreshError = "could not update package db"
	ReconcileNothingDeclared   = "no packages declared"

	ReconcileInstalledFmt     = "installed %d package(s)"
	ReconcileRemovedFmt       = "removed %d package(s)"
	ReconcileAlreadyFmt       = "package(s) already %s"
	ReconcileWouldBeFmt       = "%d package(s) would be %s"
	ReconcileInstallFailedFmt = "failed to install %s"
	ReconcileRemoveFailedFmt  = "failed to remove %s"
	ReconcileAborted          = "aborted by user"
	ReconcileConfirmFailedFmt = "confirmation failed: %v"
	ReconcileVerbInstalled    = "installed"
	ReconcileVerbRemoved      = "removed"
	ReconcileStateInstalled   = "installed"
	ReconcileStateAbsent      = "absent"
	ReconcileDiffBeforeLabel  = "before"
	ReconcileDiffAfterLabel   = "after"
	ReconcileResultChangedFmt = "changed: %s"
	ReconcileResultOKFmt      = "ok: %s"
	ReconcileResultFailedFmt  = "failed: %s"
	ReconcileResultDetailFmt  = "  %s"
)
