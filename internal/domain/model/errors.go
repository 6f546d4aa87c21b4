package model

import "errors"

// Sentinel error kinds shared by the domain packages.
var (
	ErrInvalidRosterSize = errors.New("provide exactly 10 players")
	ErrInvalidSplit      = errors.New("invalid team split")
	ErrRatingOutOfRange  = errors.New("rating out of range")
	ErrUnknownPosition   = errors.New("unknown position")
)

// Machine readable reasons for a rejected roster. They double as API error
// codes and metric label values.
const (
	ReasonInvalidRosterSize = "invalid_roster_size"
	ReasonRatingOutOfRange  = "rating_out_of_range"
	ReasonUnknownPosition   = "unknown_position"
	ReasonInvalidSplit      = "invalid_split"
	ReasonBadRequest        = "bad_request"
)

// Reason classifies err by the first sentinel it matches. Size problems take
// precedence, then ratings, then positions.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRosterSize):
		return ReasonInvalidRosterSize
	case errors.Is(err, ErrRatingOutOfRange):
		return ReasonRatingOutOfRange
	case errors.Is(err, ErrUnknownPosition):
		return ReasonUnknownPosition
	case errors.Is(err, ErrInvalidSplit):
		return ReasonInvalidSplit
	default:
		return ReasonBadRequest
	}
}
