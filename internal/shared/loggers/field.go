package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldRunID      = "run_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldSourceName  = "source_name"
	FieldOutputName  = "output_name"
	FieldLinesRead   = "lines_read"
	FieldLinesKept   = "lines_kept"
	FieldLoops       = "loops"
	FieldPartitionId = "partition_id"
)
