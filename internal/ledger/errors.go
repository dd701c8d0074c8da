package ledger

import "errors"

// Rejection errors. A ledger operation that returns one of these has left
// the ledger unchanged; presentation layers treat them as silent no-ops.
var (
	ErrBlankName      = errors.New("member name is blank")
	ErrDuplicateName  = errors.New("member name already exists")
	ErrInvalidAmount  = errors.New("amount must be a positive number")
	ErrNoPayer        = errors.New("payer is not set")
	ErrNoParticipants = errors.New("no participants selected")
	ErrUnknownMember  = errors.New("unknown member")
)

// Reason returns a short machine-readable code for a rejection error, or
// an empty string if err is nil or not a rejection.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBlankName):
		return "blank_name"
	case errors.Is(err, ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrNoPayer):
		return "no_payer"
	case errors.Is(err, ErrNoParticipants):
		return "no_participants"
	case errors.Is(err, ErrUnknownMember):
		return "unknown_member"
	default:
		return ""
	}
}

// IsRejection reports whether err is one of the input rejection errors.
func IsRejection(err error) bool {
	return Reason(err) != ""
}
