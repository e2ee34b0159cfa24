//go:build !unix

package fsext

// RaiseOpenFileLimit is a no-op where descriptors are not limited per
// process.
func RaiseOpenFileLimit() (uint64, error) {
	return 2048, nil
}
