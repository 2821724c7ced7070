package utils

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/buildbeaver/jenkins2gha/common/gerror"
)

// LockFileName is created in a directory while a command is writing into it.
const LockFileName = ".jenkins2gha.lock"

// HomeifyPath expands a leading "~/" or "$HOME" in path to the user's home directory.
func HomeifyPath(path string) (string, error) {
	var rest string
	switch {
	case strings.HasPrefix(path, "~/"):
		rest = strings.TrimPrefix(path, "~/")
	case strings.HasPrefix(path, "$HOME"):
		rest = strings.TrimPrefix(path, "$HOME")
	default:
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error locating user home directory: %w", err)
	}
	return filepath.Join(home, rest), nil
}

// LockOutputDir creates dir if necessary and takes an exclusive lock on it, so that two runs can't
// write into the same directory at once. Returns a Locked error if another process holds the lock.
// The caller must call the returned unlock function when it has finished writing.
func LockOutputDir(dir string) (unlock func(), err error) {
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating output directory %q", dir)
	}
	lockPath := filepath.Join(dir, LockFileName)
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, "error locking output directory %q", dir)
	}
	if !locked {
		return nil, gerror.NewErrLocked(fmt.Sprintf("output directory %q is in use by another instance of jenkins2gha", dir))
	}
	return func() {
		lock.Unlock()
		os.Remove(lockPath)
	}, nil
}

// SignalContext returns a context that is cancelled when the process is interrupted.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
