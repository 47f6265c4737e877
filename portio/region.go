package portio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrorBusy is returned when the requested I/O region is held by someone else
	ErrorBusy = Error("I/O region already in use")

	// ErrorReleased is returned when a region is released multiple times. This is harmless.
	ErrorReleased = Error("I/O region was already released")
)

// LockDir is the directory where region lock files are created. All programs
// sharing a region must agree on it.
var LockDir = "/run/lock"

// Region is an exclusive lease on a range of I/O ports. Unrelated processes
// probing the same ports are kept out as well, as long as they use the same
// lock file convention.
type Region struct {
	file *os.File

	mutex    sync.Mutex
	released bool
}

// TryClaimRegion attempts to get exclusive ownership of size I/O ports
// starting at base. It does not block: if another holder owns the region
// ErrorBusy is returned immediately and the caller decides whether to retry.
func TryClaimRegion(base uint16, size uint) (*Region, error) {
	name := filepath.Join(LockDir, fmt.Sprintf("ioport-%04x-%d.lock", base, size))

	file, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}

	err = unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		file.Close()
		if err == unix.EWOULDBLOCK {
			return nil, ErrorBusy
		}
		return nil, err
	}

	return &Region{file: file}, nil
}

// Release gives up ownership of the region. It can safely be called multiple
// times, only the first call does anything.
func (r *Region) Release() error {
	r.mutex.Lock()
	released := r.released
	r.released = true
	r.mutex.Unlock()

	if released {
		return ErrorReleased
	}

	/* Closing the file drops the flock as well */
	return r.file.Close()
}
