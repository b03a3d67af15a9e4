package party

import "errors"

var (
	// ErrPartyNotFound заявка на день рождения не найдена
	ErrPartyNotFound = errors.New("party.repository: party not found")

	ErrBuildQuery = errors.New("party.repository: failed to build query")
	ErrExecQuery  = errors.New("party.repository: failed to execute query")
	ErrScanRow    = errors.New("party.repository: failed to scan row")
)
