package playpackage

import "errors"

var (
	// ErrPackageNotFound пакет не найден
	ErrPackageNotFound = errors.New("playpackage.repository: package not found")

	ErrBuildQuery = errors.New("playpackage.repository: failed to build query")
	ErrExecQuery  = errors.New("playpackage.repository: failed to execute query")
	ErrScanRow    = errors.New("playpackage.repository: failed to scan row")
)
