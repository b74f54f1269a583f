package pvst

import "fmt"

// errInvalidPVST formats an invariant-violation error; the caller typically
// reports it and skips the offending record.
func errInvalidPVST(format string, args ...any) error {
	return fmt.Errorf("pvst: invariant violation: "+format, args...)
}
