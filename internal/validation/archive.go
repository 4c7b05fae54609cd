package validation

import (
	"fmt"
	"strings"
)

// MaxArchiveSize is the upload limit for bulk-import archives.
const MaxArchiveSize = 100 << 20 // 100 MiB

// ValidationError is a locally-detected input problem. It never reaches
// the network and its message is shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateImportArchive applies the local preconditions for a bulk-import
// upload: a .zip name (case-insensitive) and a size within the limit.
func ValidateImportArchive(filename string, size int64) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".zip") {
		return &ValidationError{
			Field:   "file",
			Message: "please select a ZIP file containing your documents",
		}
	}
	if size <= 0 {
		return &ValidationError{
			Field:   "file",
			Message: "file is empty",
		}
	}
	if size > MaxArchiveSize {
		return &ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("file size must be less than %d MB", MaxArchiveSize>>20),
		}
	}
	return nil
}
