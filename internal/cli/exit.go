package cli

import "github.com/yildizm/irsum/internal/common"

// Exit codes by failure type
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitIO               = 2
	ExitFormat           = 3
	ExitEmptyFile        = 4
	ExitNoRawData        = 5
	ExitDegenerateBucket = 6
)

// ExitCode maps an error returned by a command to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	errType, ok := common.TypeOf(err)
	if !ok {
		return ExitFailure
	}

	switch errType {
	case common.ErrTypeIO:
		return ExitIO
	case common.ErrTypeFormat:
		return ExitFormat
	case common.ErrTypeEmptyFile:
		return ExitEmptyFile
	case common.ErrTypeNoRawData:
		return ExitNoRawData
	case common.ErrTypeDegenerateBucket:
		return ExitDegenerateBucket
	default:
		return ExitFailure
	}
}
