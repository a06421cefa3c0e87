package compactors

import (
	"fmt"

	"outlog/internal/shared/svcerrors"
)

// CompactionService errors
const (
	codeValidationFailed = "CMP_1000"
	codeNoInputsMatched  = "CMP_1001"

	codeInternalInputReadFailed   = "CMP_9000"
	codeInternalOutputWriteFailed = "CMP_9001"
	codeInternalReportStoreFailed = "CMP_9002"
)

// errValidationFailed returns an error for invalid compaction requests.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errNoInputsMatched(dir, glob string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeNoInputsMatched, fmt.Sprintf("no outlogs matched %q under %s", glob, dir), nil)
}

// errInternalInputReadFailed returns an error when an outlog cannot be read.
func errInternalInputReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalInputReadFailed, fmt.Errorf("inputReadFailed: %w", cause))
}

func errInternalOutputWriteFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalOutputWriteFailed, fmt.Errorf("outputWriteFailed: %w", cause))
}

func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}
