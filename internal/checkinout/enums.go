package checkinout

import "guestlink/internal/gueststatus"

// RequestType distinguishes the two time-adjustment asks
type RequestType string

const (
	RequestTypeEarlyCheckIn RequestType = "EARLY_CHECK_IN"
	RequestTypeLateCheckOut RequestType = "LATE_CHECK_OUT"
)

func IsValidRequestType(s string) bool {
	switch RequestType(s) {
	case RequestTypeEarlyCheckIn, RequestTypeLateCheckOut:
		return true
	default:
		return false
	}
}

// requestStatusField maps a request type to the status field it governs.
// An explicit lookup table instead of building field names from strings.
var requestStatusField = map[RequestType]gueststatus.Field{
	RequestTypeEarlyCheckIn: gueststatus.FieldEarlyCheckIn,
	RequestTypeLateCheckOut: gueststatus.FieldLateCheckOut,
}

// guestTimeColumn maps a request type to the guest column an accepted
// decision writes the requested time into.
var guestTimeColumn = map[RequestType]string{
	RequestTypeEarlyCheckIn: "check_in_time",
	RequestTypeLateCheckOut: "check_out_time",
}

// StatusField returns the guest-status field governed by this request type
func (t RequestType) StatusField() gueststatus.Field {
	return requestStatusField[t]
}
