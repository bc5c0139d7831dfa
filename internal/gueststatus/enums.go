package gueststatus

// Stage is the guest's high-level lifecycle stage
type Stage string

const (
	StageReservation Stage = "RESERVATION"
	StageInHouse     Stage = "IN_HOUSE"
	StageCheckedOut  Stage = "CHECKED_OUT"
)

// ReservationStatus tracks the booking itself
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// RequestState is the lifecycle of an early check-in or late check-out ask
type RequestState string

const (
	RequestNotRequested RequestState = "NOT_REQUESTED"
	RequestRequested    RequestState = "REQUESTED"
	RequestAccepted     RequestState = "ACCEPTED"
	RequestDeclined     RequestState = "DECLINED"
)

// PreArrivalStatus tracks whether the guest completed the pre-arrival form
type PreArrivalStatus string

const (
	PreArrivalNotApplied PreArrivalStatus = "NOT_APPLIED"
	PreArrivalApplied    PreArrivalStatus = "APPLIED"
)

// Field identifies one governed status field
type Field string

const (
	FieldCurrentStatus Field = "currentStatus"
	FieldReservation   Field = "reservationStatus"
	FieldEarlyCheckIn  Field = "earlyCheckInStatus"
	FieldLateCheckOut  Field = "lateCheckOutStatus"
	FieldPreArrival    Field = "preArrivalStatus"
)

func IsValidStage(s string) bool {
	switch Stage(s) {
	case StageReservation, StageInHouse, StageCheckedOut:
		return true
	default:
		return false
	}
}

func IsValidReservationStatus(s string) bool {
	switch ReservationStatus(s) {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	default:
		return false
	}
}

func IsValidRequestState(s string) bool {
	switch RequestState(s) {
	case RequestNotRequested, RequestRequested, RequestAccepted, RequestDeclined:
		return true
	default:
		return false
	}
}

func IsValidPreArrivalStatus(s string) bool {
	switch PreArrivalStatus(s) {
	case PreArrivalNotApplied, PreArrivalApplied:
		return true
	default:
		return false
	}
}
