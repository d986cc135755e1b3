package share

import "errors"

var (
	// ErrAuth aborts the run: the store rejected our identity.
	ErrAuth = errors.New("store auth failed")
	// ErrQuery fails the current pass; the next invocation retries.
	ErrQuery = errors.New("store query failed")
	// ErrParse marks a document that does not decode into a valid Record.
	ErrParse = errors.New("invalid share record")
	// ErrDelivery marks a record whose URL could not be opened.
	ErrDelivery = errors.New("delivery failed")
	// ErrRetire marks a record that was opened but could not be retired.
	ErrRetire = errors.New("retire failed")
)

func IsErrParse(err error) bool    { return errors.Is(err, ErrParse) }
func IsErrDelivery(err error) bool { return errors.Is(err, ErrDelivery) }
func IsErrRetire(err error) bool   { return errors.Is(err, ErrRetire) }
