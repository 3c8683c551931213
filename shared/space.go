package shared

import (
	"fmt"

	"code.cloudfoundry.org/bytefmt"
	"github.com/ricochet2200/go-disk-usage/du"
)

// AvailableSpace returns the number of bytes available to the current user on the
// filesystem holding path.
func AvailableSpace(path string) uint64 {
	usage := du.NewDiskUsage(path)
	return usage.Available()
}

// ValidateSpace checks that at least required bytes are available at path.
func ValidateSpace(path string, required uint64) error {
	if required == 0 {
		return nil
	}

	available := AvailableSpace(path)
	if required > available {
		return fmt.Errorf("%w at %v; required: %v, available: %v",
			ErrInsufficientSpace, path, bytefmt.ByteSize(required), bytefmt.ByteSize(available))
	}

	return nil
}
