package domain

import "github.com/mentorhub/MH-SessionService/pkg/types"

// Slot represents a candidate bookable time interval derived from
// a mentor's availability templates
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}
