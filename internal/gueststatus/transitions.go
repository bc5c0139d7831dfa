package gueststatus

import (
	"errors"
	"fmt"
)

var ErrIllegalTransition = errors.New("illegal status transition")

// allowedStatusTable lists, per lifecycle stage, which sub-status fields may be
// populated beyond their default and which values they may hold.
var allowedStatusTable = map[Stage]map[Field][]string{
	StageReservation: {
		FieldReservation: {string(ReservationConfirmed), string(ReservationCancelled)},
	},
	StageInHouse: {
		FieldReservation:  {string(ReservationConfirmed)},
		FieldPreArrival:   {string(PreArrivalNotApplied), string(PreArrivalApplied)},
		FieldEarlyCheckIn: {string(RequestNotRequested), string(RequestRequested), string(RequestAccepted), string(RequestDeclined)},
	},
	StageCheckedOut: {
		FieldLateCheckOut: {string(RequestNotRequested), string(RequestRequested), string(RequestAccepted), string(RequestDeclined)},
	},
}

// IsLegalTransition reports whether moving from current to proposed is legal
// through the generic status-update path. Pure, no side effects.
func IsLegalTransition(current, proposed Snapshot) bool {
	return ValidateTransition(current, proposed) == nil
}

// ValidateTransition decides whether a proposed status update is legal.
//
// Sub-status fields (early check-in, late check-out, pre-arrival) are mutable
// exclusively through their dedicated request and form flows. Those flows name
// the one field they are authorized to move via allowedFields; the generic
// dashboard path passes none, so any sub-status divergence is rejected there.
// Both paths share this single rule set.
func ValidateTransition(current, proposed Snapshot, allowedFields ...Field) error {
	if !IsValidStage(string(proposed.CurrentStatus)) {
		return fmt.Errorf("%w: unknown stage %q", ErrIllegalTransition, proposed.CurrentStatus)
	}

	// The identity transition is always legal.
	if proposed == current {
		return nil
	}

	allowed := make(map[Field]bool, len(allowedFields))
	for _, f := range allowedFields {
		allowed[f] = true
	}

	if current.CurrentStatus == proposed.CurrentStatus {
		return validateSameStage(current, proposed, allowed)
	}
	return validateStageChange(current, proposed)
}

func validateSameStage(current, proposed Snapshot, allowed map[Field]bool) error {
	switch current.CurrentStatus {
	case StageReservation:
		if current.ReservationStatus == ReservationCancelled {
			// A cancelled reservation is terminal. Only the no-op is legal.
			if proposed != current {
				return fmt.Errorf("%w: reservation is cancelled", ErrIllegalTransition)
			}
			return nil
		}
		if err := checkLegalValue(StageReservation, FieldReservation, string(proposed.ReservationStatus)); err != nil {
			return err
		}
		if err := frozenUnlessAllowed(current, proposed, allowed, FieldEarlyCheckIn, FieldLateCheckOut, FieldPreArrival); err != nil {
			return err
		}
		return nil

	case StageInHouse:
		if current.ReservationStatus == ReservationCancelled {
			// Invariant violation guard: cancelled reservations cannot be in-house.
			return fmt.Errorf("%w: cancelled reservation cannot be in-house", ErrIllegalTransition)
		}
		if proposed.ReservationStatus != ReservationConfirmed {
			return fmt.Errorf("%w: in-house guests must hold a confirmed reservation", ErrIllegalTransition)
		}
		if err := frozenUnlessAllowed(current, proposed, allowed, FieldEarlyCheckIn, FieldLateCheckOut, FieldPreArrival); err != nil {
			return err
		}
		return nil

	case StageCheckedOut:
		if current.ReservationStatus == ReservationCancelled {
			return fmt.Errorf("%w: cancelled reservation cannot be checked out", ErrIllegalTransition)
		}
		if proposed.ReservationStatus != current.ReservationStatus {
			return fmt.Errorf("%w: reservation status is fixed after check-out", ErrIllegalTransition)
		}
		if err := frozenUnlessAllowed(current, proposed, allowed, FieldEarlyCheckIn, FieldLateCheckOut, FieldPreArrival); err != nil {
			return err
		}
		return nil
	}

	return fmt.Errorf("%w: unknown stage %q", ErrIllegalTransition, current.CurrentStatus)
}

// validateStageChange checks the entire proposed record against the allowed
// values for the new stage. Sub-status fields not governed at the new stage
// are carried over unchanged, never edited in the same move.
func validateStageChange(current, proposed Snapshot) error {
	// A cancelled reservation is terminal. No stage change may leave it,
	// whether the proposed record flips the reservation back or carries the
	// cancellation along into the new stage.
	if current.ReservationStatus == ReservationCancelled {
		return fmt.Errorf("%w: reservation is cancelled", ErrIllegalTransition)
	}

	stage := proposed.CurrentStatus
	permitted := allowedStatusTable[stage]

	for field, value := range governedValues(proposed) {
		if _, ok := permitted[field]; ok {
			if err := checkLegalValue(stage, field, value); err != nil {
				return err
			}
			continue
		}
		// Not permitted at the new stage: must ride along untouched.
		if value != governedValues(current)[field] {
			return fmt.Errorf("%w: %s cannot change while entering stage %s", ErrIllegalTransition, field, stage)
		}
	}

	return nil
}

func governedValues(s Snapshot) map[Field]string {
	return map[Field]string{
		FieldReservation:  string(s.ReservationStatus),
		FieldEarlyCheckIn: string(s.EarlyCheckInStatus),
		FieldLateCheckOut: string(s.LateCheckOutStatus),
		FieldPreArrival:   string(s.PreArrivalStatus),
	}
}

func checkLegalValue(stage Stage, field Field, value string) error {
	for _, legal := range allowedStatusTable[stage][field] {
		if legal == value {
			return nil
		}
	}
	return fmt.Errorf("%w: %s=%s is not legal at stage %s", ErrIllegalTransition, field, value, stage)
}

func frozenUnlessAllowed(current, proposed Snapshot, allowed map[Field]bool, fields ...Field) error {
	currentValues := governedValues(current)
	proposedValues := governedValues(proposed)
	for _, field := range fields {
		if allowed[field] {
			if err := checkValidEnumValue(field, proposedValues[field]); err != nil {
				return err
			}
			continue
		}
		if currentValues[field] != proposedValues[field] {
			return fmt.Errorf("%w: %s changes only through its dedicated flow", ErrIllegalTransition, field)
		}
	}
	return nil
}

func checkValidEnumValue(field Field, value string) error {
	var ok bool
	switch field {
	case FieldReservation:
		ok = IsValidReservationStatus(value)
	case FieldEarlyCheckIn, FieldLateCheckOut:
		ok = IsValidRequestState(value)
	case FieldPreArrival:
		ok = IsValidPreArrivalStatus(value)
	}
	if !ok {
		return fmt.Errorf("%w: %s=%s is not a known value", ErrIllegalTransition, field, value)
	}
	return nil
}
