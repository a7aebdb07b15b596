package brackets

import "errors"

var (
	ErrMatchNotFound       = errors.New("knockout match not found")
	ErrMatchNotReady       = errors.New("knockout match participants are not known yet")
	ErrNotParticipant      = errors.New("winner does not play in this match")
	ErrByeMatch            = errors.New("bye matches have no result to record")
	ErrMatchAlreadyDecided = errors.New("knockout match already has a different winner")
)
