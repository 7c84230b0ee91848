package common

type PanicStatus struct {
	ExitCode int
	Error    error
	Message  string
}

const (
	EXIT_SUCCESS        = 0
	EXIT_COMMON_FAILURE = 1
	EXIT_INVALID_ARGS   = 2

	// ops
	EXIT_OPERATION_FAILED   = 5
	EXIT_OPERATION_CANCELED = 6

	// records io
	EXIT_RECORDS_LOAD_FAILURE  = 10
	EXIT_RECORDS_WRITE_FAILURE = 11
	EXIT_RECORDS_LOCK_FAILURE  = 12

	// configuration
	EXIT_CONFIGURATION_LOAD_FAILURE = 20
	EXIT_CONFIGURATION_SAVE_FAILURE = 22

	EXIT_STATE_LOAD_FAILURE = 30

	EXIT_UNHANDLED_ERROR = 100
)
