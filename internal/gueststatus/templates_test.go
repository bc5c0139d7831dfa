package gueststatus

import "testing"

func TestResolveTemplateStageChangeWins(t *testing.T) {
	old := DefaultSnapshot()

	updated := old
	updated.CurrentStatus = StageInHouse
	// A sub-status moved in the same update, the stage change still wins
	updated.PreArrivalStatus = PreArrivalApplied

	if got := ResolveTemplate(old, updated); got != "Checked In" {
		t.Errorf("expected Checked In, got %q", got)
	}

	updated = old
	updated.CurrentStatus = StageCheckedOut
	if got := ResolveTemplate(old, updated); got != "Checked Out" {
		t.Errorf("expected Checked Out, got %q", got)
	}
}

func TestResolveTemplateSubStatusScanOrder(t *testing.T) {
	old := Snapshot{
		CurrentStatus:      StageInHouse,
		ReservationStatus:  ReservationConfirmed,
		EarlyCheckInStatus: RequestNotRequested,
		LateCheckOutStatus: RequestNotRequested,
		PreArrivalStatus:   PreArrivalNotApplied,
	}

	// Early check-in is scanned before pre-arrival, so it picks the template
	// when both moved.
	updated := old
	updated.EarlyCheckInStatus = RequestAccepted
	updated.PreArrivalStatus = PreArrivalApplied

	if got := ResolveTemplate(old, updated); got != "Early Check In Accepted" {
		t.Errorf("expected Early Check In Accepted, got %q", got)
	}

	updated = old
	updated.PreArrivalStatus = PreArrivalApplied
	if got := ResolveTemplate(old, updated); got != "Pre Arrival Completed" {
		t.Errorf("expected Pre Arrival Completed, got %q", got)
	}

	updated = old
	updated.LateCheckOutStatus = RequestDeclined
	if got := ResolveTemplate(old, updated); got != "Late Check Out Declined" {
		t.Errorf("expected Late Check Out Declined, got %q", got)
	}
}

func TestResolveTemplateCancellation(t *testing.T) {
	old := DefaultSnapshot()
	updated := old
	updated.ReservationStatus = ReservationCancelled

	if got := ResolveTemplate(old, updated); got != "Reservation Cancelled" {
		t.Errorf("expected Reservation Cancelled, got %q", got)
	}
}

func TestResolveTemplateNoChangeFallsBackToDefault(t *testing.T) {
	s := DefaultSnapshot()
	if got := ResolveTemplate(s, s); got != DefaultTemplate {
		t.Errorf("expected fallback %q, got %q", DefaultTemplate, got)
	}
}

func TestResolveTemplateUnmappedValueFallsBackToDefault(t *testing.T) {
	old := Snapshot{
		CurrentStatus:      StageInHouse,
		ReservationStatus:  ReservationConfirmed,
		EarlyCheckInStatus: RequestRequested,
		LateCheckOutStatus: RequestNotRequested,
		PreArrivalStatus:   PreArrivalNotApplied,
	}

	// Resetting back to NOT_REQUESTED has no template of its own
	updated := old
	updated.EarlyCheckInStatus = RequestNotRequested

	if got := ResolveTemplate(old, updated); got != DefaultTemplate {
		t.Errorf("expected fallback %q, got %q", DefaultTemplate, got)
	}
}
