package holiday

import "errors"

var (
	// ErrHolidayNotFound на дату нет активного выходного
	ErrHolidayNotFound = errors.New("holiday.repository: holiday not found")

	// ErrHolidayExists выходной на эту дату уже заведён
	ErrHolidayExists = errors.New("holiday.repository: holiday already exists for this date")

	ErrBuildQuery = errors.New("holiday.repository: failed to build query")
	ErrExecQuery  = errors.New("holiday.repository: failed to execute query")
	ErrScanRow    = errors.New("holiday.repository: failed to scan row")
)
