package session

import "errors"

var (
	ErrItemNotFound     = errors.New("image not found")
	ErrNotConverted     = errors.New("image has not been converted")
	ErrNothingToExport  = errors.New("no converted images to export")
	ErrBatchRunning     = errors.New("a conversion batch is already running")
	ErrConverterMissing = errors.New("no converter available")
	ErrNotScheduled     = errors.New("conversion could not be scheduled")
)
