package mempool

import (
	"errors"
	"fmt"
)

// Policy rejection reasons. Checks wrap these with details; match them with errors.Is.
var (
	ErrTxTooLarge         = errors.New("transaction size exceeds maximum")
	ErrFeeTooLow          = errors.New("transaction fee too low")
	ErrDustOutput         = errors.New("transaction has outputs below dust limit")
	ErrTooManyAncestors   = errors.New("transaction would exceed ancestor count limit")
	ErrTooManyDescendants = errors.New("transaction would exceed descendant count limit")
	ErrNonStandard        = errors.New("transaction fails standardness checks")
	ErrTooManySigops      = errors.New("transaction contains too many sigops")
	ErrRecentReplacement  = errors.New("transaction is a recent replacement")
	ErrGeneral            = errors.New("general policy error")
)

// General returns an ErrGeneral carrying msg.
func General(msg string) error {
	return fmt.Errorf("%w: %s", ErrGeneral, msg)
}

func reject(reason error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", reason, fmt.Sprintf(format, args...))
}

var reasons = []struct {
	err   error
	label string
}{
	{ErrTxTooLarge, "tx_too_large"},
	{ErrFeeTooLow, "fee_too_low"},
	{ErrDustOutput, "dust_output"},
	{ErrTooManyAncestors, "too_many_ancestors"},
	{ErrTooManyDescendants, "too_many_descendants"},
	{ErrNonStandard, "non_standard"},
	{ErrTooManySigops, "too_many_sigops"},
	{ErrRecentReplacement, "recent_replacement"},
	{ErrGeneral, "general"},
}

// RejectReason maps a policy error to a stable short label. Non-policy errors map to "other"; nil maps to "".
func RejectReason(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "other"
}

// IsPolicyError reports whether err carries one of the policy rejection reasons.
func IsPolicyError(err error) bool {
	reason := RejectReason(err)
	return reason != "" && reason != "other"
}
