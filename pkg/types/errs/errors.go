package errs

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNoRecords      = errors.New("upload event contains no records")
	ErrBadRecord      = errors.New("upload event record is malformed")
)
