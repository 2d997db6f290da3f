package presence

import "errors"

// Presence domain errors
var (
	// Import errors
	ErrUnreadableWorkbook = errors.New("spreadsheet could not be read as tabular data")
	ErrNothingToImport    = errors.New("no importable rows found in spreadsheet")

	// Administrative errors
	ErrConfirmationMismatch = errors.New("confirmation phrase does not match")
)
