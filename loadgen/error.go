package loadgen

import stderr "github.com/pkg/errors"

var (
	errNoAccounts = stderr.New("at least one account is required")
	errNoWorkload = stderr.New("a workload is required")
)

func errUnknownCurve(curve string) error {
	return stderr.Errorf("unknown curve %q, expected %s or %s", curve, CurveUncorrelated, CurveStable)
}
