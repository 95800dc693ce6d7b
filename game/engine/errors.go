package engine

import "errors"

// Illegal operations under the current state. Each is returned without
// mutating the state.
var (
	ErrQuestionPending         = errors.New("a question is pending and must be answered first")
	ErrAwaitingAcknowledgement = errors.New("the turn must be acknowledged before the next roll")
	ErrNoPendingQuestion       = errors.New("no question is pending")
	ErrWrongQuestionStyle      = errors.New("answer does not match the question style")
	ErrInvalidOption           = errors.New("option index out of range")
	ErrNothingToAcknowledge    = errors.New("nothing to acknowledge")
)
