package oracle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"github.com/conn-castle/pkgstate/internal/messages"
)

// Lock is an exclusive advisory lock held while packages are being changed.
type Lock struct {
	path string
	file *os.File
}

var flockFn = unix.Flock
var lockSleep = time.Sleep

var (
	lockWaitTimeout = 30 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

// DefaultLockPath places the lock in XDG_RUNTIME_DIR, falling back to the temp dir.
func DefaultLockPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, messages.LockDefaultName)
}

// WithLock acquires the lock at path, runs fn, and releases the lock.
func WithLock(path string, fn func() error) error {
	lock, err := AcquireLock(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Warn().Msgf(messages.LockReleaseFailFmt, path, err)
		}
	}()
	return fn()
}

// AcquireLock creates path if needed and takes an exclusive flock on it.
// A held lock is retried every lockPollEvery until lockWaitTimeout has elapsed.
func AcquireLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf(messages.LockCreateDirFmt, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}

	retries := int(lockWaitTimeout / lockPollEvery)
	for attempt := 0; ; attempt++ {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &Lock{path: path, file: file}, nil
		}
		busy := errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN)
		switch {
		case !busy:
			_ = file.Close()
			return nil, fmt.Errorf(messages.LockAcquireFmt, path, err)
		case attempt >= retries:
			_ = file.Close()
			return nil, fmt.Errorf(messages.LockAcquireFmt, path, fmt.Errorf(messages.LockTimeoutFmt, lockWaitTimeout))
		}
		log.Debug().Str("path", path).Int("attempt", attempt+1).Msg("waiting for lock")
		lockSleep(lockPollEvery)
	}
}

// Release unlocks and closes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := flockFn(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil
	if err != nil {
		return err
	}
	return closeErr
}
