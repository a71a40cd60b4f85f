package model

import "time"

// BookingRequest is everything a single booking run needs once
// configuration has been resolved. Slot tags are registered by the
// booking validator.
type BookingRequest struct {
	Date      time.Time `json:"date" validate:"required"`
	StartTime string    `json:"start_time" validate:"required,start_slot"`
	EndTime   string    `json:"end_time" validate:"required,end_slot"`
	Facility  string    `json:"facility" validate:"required,min=2,max=200"`
	Purpose   string    `json:"purpose" validate:"required,min=2,max=500"`
	CoBooker  string    `json:"cobooker" validate:"required,min=2,max=200"`

	// Confirm is false on debug runs: the whole form is driven but the
	// final confirmation click is skipped.
	Confirm bool `json:"confirm"`
}
