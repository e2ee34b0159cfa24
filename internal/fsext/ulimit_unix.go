//go:build unix

package fsext

import "golang.org/x/sys/unix"

// RaiseOpenFileLimit lifts the soft open-file limit to 80% of the hard limit
// so that watching deep trees does not run out of descriptors. It returns
// the limit in effect afterwards.
func RaiseOpenFileLimit() (uint64, error) {
	var lim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		return 0, err
	}
	current := uint64(lim.Cur)
	if target := lim.Max / 10 * 8; target > lim.Cur {
		lim.Cur = target
		if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
			return current, err
		}
	}
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		return current, err
	}
	return uint64(lim.Cur), nil
}
