package model

import "fmt"

// GenericDetectFailure is shown when the backend gave no usable message
const GenericDetectFailure = "Failed to detect plant. Please try again."

// InvalidFileMessage is the alert for a non-image selection
const InvalidFileMessage = "Please select a valid image file"

// BackendError is a non-2xx answer from the detection backend. Message is
// the human readable text the backend supplied, possibly empty.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}
