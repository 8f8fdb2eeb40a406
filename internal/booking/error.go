package booking

import "errors"

var (
	ErrAlreadySubmitting = errors.New("booking is already being submitted")
	ErrNoPendingConflict = errors.New("no duplicate booking awaiting confirmation")
	ErrNotEditing        = errors.New("booking form is not editable")
	ErrBookingNotFound   = errors.New("booking not found")
)
