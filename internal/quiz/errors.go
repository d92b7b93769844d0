package quiz

import (
	"errors"
	"fmt"
)

// ErrNoSelection is returned when the learner advances without choosing an option.
var ErrNoSelection = errors.New("please choose an option")

// LoadError indicates the question set could not be loaded. The session
// halts after a LoadError; there is no retry.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load the question set: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// RecommendError indicates the recommendation request failed in transport
// or returned a non-success status.
type RecommendError struct {
	Err error
}

func (e *RecommendError) Error() string {
	return fmt.Sprintf("the recommendation service failed: %v", e.Err)
}

func (e *RecommendError) Unwrap() error { return e.Err }

// ServiceError carries an application-level error reported by the
// recommendation service. Message is shown to the learner verbatim.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// UserMessage returns the text to show the learner for a notice error.
// ServiceError messages pass through unchanged; the other kinds get a
// fixed, readable sentence.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return "Could not load the question data."
	}
	var recErr *RecommendError
	if errors.As(err, &recErr) {
		return "The recommendation system ran into an error."
	}
	if errors.Is(err, ErrNoSelection) {
		return "Please choose an option."
	}
	return err.Error()
}
