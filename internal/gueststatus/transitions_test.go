package gueststatus

import (
	"errors"
	"testing"
)

func reservationConfirmed() Snapshot {
	return DefaultSnapshot()
}

func TestIdentityTransitionIsAlwaysLegal(t *testing.T) {
	snapshots := []Snapshot{
		reservationConfirmed(),
		{
			CurrentStatus:      StageReservation,
			ReservationStatus:  ReservationCancelled,
			EarlyCheckInStatus: RequestNotRequested,
			LateCheckOutStatus: RequestNotRequested,
			PreArrivalStatus:   PreArrivalNotApplied,
		},
		{
			CurrentStatus:      StageInHouse,
			ReservationStatus:  ReservationConfirmed,
			EarlyCheckInStatus: RequestAccepted,
			LateCheckOutStatus: RequestNotRequested,
			PreArrivalStatus:   PreArrivalApplied,
		},
		{
			CurrentStatus:      StageCheckedOut,
			ReservationStatus:  ReservationConfirmed,
			EarlyCheckInStatus: RequestDeclined,
			LateCheckOutStatus: RequestAccepted,
			PreArrivalStatus:   PreArrivalApplied,
		},
	}

	for _, s := range snapshots {
		if !IsLegalTransition(s, s) {
			t.Errorf("identity transition rejected for %+v", s)
		}
	}
}

func TestConfirmedReservationCanBeCancelled(t *testing.T) {
	current := reservationConfirmed()
	proposed := current
	proposed.ReservationStatus = ReservationCancelled

	if !IsLegalTransition(current, proposed) {
		t.Error("cancelling a confirmed reservation should be legal")
	}
}

func TestCancelledReservationIsTerminal(t *testing.T) {
	current := reservationConfirmed()
	current.ReservationStatus = ReservationCancelled

	proposed := current
	proposed.ReservationStatus = ReservationConfirmed

	if IsLegalTransition(current, proposed) {
		t.Error("un-cancelling a reservation should be illegal")
	}

	// Any other edit on a cancelled reservation is illegal too
	proposed = current
	proposed.PreArrivalStatus = PreArrivalApplied
	if IsLegalTransition(current, proposed) {
		t.Error("editing a cancelled reservation should be illegal")
	}
}

func TestCancelledGuestCannotBeInHouse(t *testing.T) {
	current := Snapshot{
		CurrentStatus:      StageInHouse,
		ReservationStatus:  ReservationCancelled,
		EarlyCheckInStatus: RequestNotRequested,
		LateCheckOutStatus: RequestNotRequested,
		PreArrivalStatus:   PreArrivalNotApplied,
	}
	proposed := current
	proposed.PreArrivalStatus = PreArrivalApplied

	if err := ValidateTransition(current, proposed); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected ErrIllegalTransition, got %v", err)
	}
}

func TestSubStatusFrozenOnGenericPath(t *testing.T) {
	current := Snapshot{
		CurrentStatus:      StageInHouse,
		ReservationStatus:  ReservationConfirmed,
		EarlyCheckInStatus: RequestRequested,
		LateCheckOutStatus: RequestNotRequested,
		PreArrivalStatus:   PreArrivalNotApplied,
	}

	proposed := current
	proposed.EarlyCheckInStatus = RequestAccepted

	if IsLegalTransition(current, proposed) {
		t.Error("early check-in status must not change through the generic path")
	}

	proposed = current
	proposed.PreArrivalStatus = PreArrivalApplied
	if IsLegalTransition(current, proposed) {
		t.Error("pre-arrival status must not change through the generic path")
	}
}

func TestSubStatusMovesWithExplicitAllowance(t *testing.T) {
	current := Snapshot{
		CurrentStatus:      StageInHouse,
		ReservationStatus:  ReservationConfirmed,
		EarlyCheckInStatus: RequestRequested,
		LateCheckOutStatus: RequestNotRequested,
		PreArrivalStatus:   PreArrivalNotApplied,
	}

	proposed := current
	proposed.EarlyCheckInStatus = RequestAccepted

	if err := ValidateTransition(current, proposed, FieldEarlyCheckIn); err != nil {
		t.Errorf("allowed sub-status change rejected: %v", err)
	}

	// The allowance covers exactly one field
	proposed.PreArrivalStatus = PreArrivalApplied
	if err := ValidateTransition(current, proposed, FieldEarlyCheckIn); err == nil {
		t.Error("allowance for one field must not unlock another")
	}
}

func TestStageChangeValidatesProposedAgainstNewStage(t *testing.T) {
	current := reservationConfirmed()

	proposed := current
	proposed.CurrentStatus = StageInHouse
	if !IsLegalTransition(current, proposed) {
		t.Error("checking in a confirmed reservation should be legal")
	}

	// A cancelled reservation cannot enter IN_HOUSE
	cancelled := current
	cancelled.ReservationStatus = ReservationCancelled
	proposed = cancelled
	proposed.CurrentStatus = StageInHouse
	if IsLegalTransition(cancelled, proposed) {
		t.Error("checking in a cancelled reservation should be illegal")
	}
}

func TestCancelledReservationCannotBeRevivedByStageChange(t *testing.T) {
	cancelled := reservationConfirmed()
	cancelled.ReservationStatus = ReservationCancelled

	// Bundling the un-cancel with the check-in must not slip past validation
	proposed := cancelled
	proposed.CurrentStatus = StageInHouse
	proposed.ReservationStatus = ReservationConfirmed
	if IsLegalTransition(cancelled, proposed) {
		t.Error("a stage change must not un-cancel a reservation")
	}

	// Nor may the cancellation ride along into CHECKED_OUT
	proposed = cancelled
	proposed.CurrentStatus = StageCheckedOut
	if IsLegalTransition(cancelled, proposed) {
		t.Error("a cancelled reservation must not enter CHECKED_OUT")
	}
}

func TestCheckOutCarriesSubStatusesUnchanged(t *testing.T) {
	current := Snapshot{
		CurrentStatus:      StageInHouse,
		ReservationStatus:  ReservationConfirmed,
		EarlyCheckInStatus: RequestAccepted,
		LateCheckOutStatus: RequestNotRequested,
		PreArrivalStatus:   PreArrivalApplied,
	}

	proposed := current
	proposed.CurrentStatus = StageCheckedOut
	if !IsLegalTransition(current, proposed) {
		t.Error("checking out should carry accepted early check-in over")
	}

	// Editing a carried-over field during the stage move is rejected
	proposed.EarlyCheckInStatus = RequestDeclined
	if IsLegalTransition(current, proposed) {
		t.Error("sub-status edits must not ride along with a stage change")
	}
}

func TestUnknownStageRejected(t *testing.T) {
	current := reservationConfirmed()
	proposed := current
	proposed.CurrentStatus = Stage("DEPARTED")

	if err := ValidateTransition(current, proposed); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected ErrIllegalTransition for unknown stage, got %v", err)
	}
}

func TestReservationStatusFixedAfterCheckOut(t *testing.T) {
	current := Snapshot{
		CurrentStatus:      StageCheckedOut,
		ReservationStatus:  ReservationConfirmed,
		EarlyCheckInStatus: RequestNotRequested,
		LateCheckOutStatus: RequestNotRequested,
		PreArrivalStatus:   PreArrivalNotApplied,
	}
	proposed := current
	proposed.ReservationStatus = ReservationCancelled

	if IsLegalTransition(current, proposed) {
		t.Error("reservation status must not change after check-out")
	}
}

func TestAllowedStatusTableValues(t *testing.T) {
	// Every populated sub-status must hold a value from its stage's allowed
	// set, never from another stage's set.
	current := reservationConfirmed()

	proposed := current
	proposed.ReservationStatus = ReservationStatus("ACCEPTED") // RequestState value
	if IsLegalTransition(current, proposed) {
		t.Error("reservation status must not accept request-state values")
	}

	proposed = current
	proposed.ReservationStatus = ReservationPending
	if IsLegalTransition(current, proposed) {
		t.Error("PENDING is not reachable through a status update at reservation stage")
	}
}
