package errors

// ErrorCode identifies an application error category
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_HTTP_OK
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_MISSING_AUDIO_FILE
	ErrorCode_TRANSCRIPTION_FAILED
	ErrorCode_TRANSCRIPTION_TIMEOUT
	ErrorCode_ANALYSIS_FAILED
	ErrorCode_STORAGE_FAILED
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_PROCESSING_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:               "UNKNOWN",
	ErrorCode_HTTP_OK:               "OK",
	ErrorCode_INTERNAL:              "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:      "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:             "NOT_FOUND",
	ErrorCode_MISSING_AUDIO_FILE:    "MISSING_AUDIO_FILE",
	ErrorCode_TRANSCRIPTION_FAILED:  "TRANSCRIPTION_FAILED",
	ErrorCode_TRANSCRIPTION_TIMEOUT: "TRANSCRIPTION_TIMEOUT",
	ErrorCode_ANALYSIS_FAILED:       "ANALYSIS_FAILED",
	ErrorCode_STORAGE_FAILED:        "STORAGE_FAILED",
	ErrorCode_DB_QUERY_FAILED:       "DB_QUERY_FAILED",
	ErrorCode_PROCESSING_FAILED:     "PROCESSING_FAILED",
}

// String returns the readable name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
