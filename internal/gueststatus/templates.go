package gueststatus

// DefaultTemplate is the fallback returned when no governed field changed.
// The behavior is deliberate and load-bearing for existing properties: a
// resolver call with nothing changed still yields the reservation
// confirmation message.
const DefaultTemplate = "Reservation Confirmed"

// subStatusScanOrder is the fixed, deterministic order the resolver walks
// sub-status fields in. Changing it changes which template wins when two
// fields moved in one update, so it stays stable.
var subStatusScanOrder = []Field{
	FieldEarlyCheckIn,
	FieldLateCheckOut,
	FieldPreArrival,
	FieldReservation,
}

// templateNames keys template names by (field, new value)
var templateNames = map[Field]map[string]string{
	FieldCurrentStatus: {
		string(StageReservation): "Reservation Confirmed",
		string(StageInHouse):     "Checked In",
		string(StageCheckedOut):  "Checked Out",
	},
	FieldReservation: {
		string(ReservationConfirmed): "Reservation Confirmed",
		string(ReservationCancelled): "Reservation Cancelled",
	},
	FieldEarlyCheckIn: {
		string(RequestRequested): "Early Check In Requested",
		string(RequestAccepted):  "Early Check In Accepted",
		string(RequestDeclined):  "Early Check In Declined",
	},
	FieldLateCheckOut: {
		string(RequestRequested): "Late Check Out Requested",
		string(RequestAccepted):  "Late Check Out Accepted",
		string(RequestDeclined):  "Late Check Out Declined",
	},
	FieldPreArrival: {
		string(PreArrivalApplied): "Pre Arrival Completed",
	},
}

// ResolveTemplate maps an observed status transition to the name of the
// message template to send. Pure lookup, no side effects.
//
// A lifecycle-stage change wins outright. Otherwise the first sub-status
// field that differs, in scan order, picks the template. If nothing differs,
// or the new value carries no template, DefaultTemplate is returned.
func ResolveTemplate(oldStatus, newStatus Snapshot) string {
	if oldStatus.CurrentStatus != newStatus.CurrentStatus {
		return lookupTemplate(FieldCurrentStatus, string(newStatus.CurrentStatus))
	}

	oldValues := governedValues(oldStatus)
	newValues := governedValues(newStatus)

	for _, field := range subStatusScanOrder {
		if oldValues[field] != newValues[field] {
			return lookupTemplate(field, newValues[field])
		}
	}

	return DefaultTemplate
}

func lookupTemplate(field Field, value string) string {
	if name, ok := templateNames[field][value]; ok {
		return name
	}
	return DefaultTemplate
}
