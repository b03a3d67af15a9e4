package enquiry

import "errors"

var (
	ErrBuildQuery = errors.New("enquiry.repository: failed to build query")
	ErrExecQuery  = errors.New("enquiry.repository: failed to execute query")
	ErrScanRow    = errors.New("enquiry.repository: failed to scan row")
)
