package processor

import "errors"

var ErrMissingRecording = errors.New("callback has no RecordingUrl")

// FailureReason tags how a recording callback ended.
type FailureReason int

const (
	ReasonNone FailureReason = iota
	ReasonMissingRecording
	ReasonFetchFailed
	ReasonTranscriptionFailed
	ReasonUnexpected
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "success"
	case ReasonMissingRecording:
		return "missing_recording"
	case ReasonFetchFailed:
		return "fetch_failed"
	case ReasonTranscriptionFailed:
		return "transcription_failed"
	default:
		return "unexpected"
	}
}

// FallbackMessage is the sentence spoken to the caller when processing stopped for r.
// It is empty for ReasonNone.
func (r FailureReason) FallbackMessage() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonMissingRecording:
		return "Recording not found. Please try again."
	case ReasonFetchFailed:
		return "Sorry, could not fetch the recording."
	case ReasonTranscriptionFailed:
		return "Sorry, transcription failed."
	default:
		return "Something went wrong. Please try again later."
	}
}

// Outcome is the result of processing one recording callback. Text holds the
// sanitized transcript when Reason is ReasonNone.
type Outcome struct {
	Reason FailureReason
	Text   string
	Err    error
}

func (o Outcome) Succeeded() bool {
	return o.Reason == ReasonNone
}

// Unexpected builds the outcome for failures outside the known stages.
func Unexpected(err error) Outcome {
	return Outcome{Reason: ReasonUnexpected, Err: err}
}
