package kafka

import (
	"errors"
	"fmt"
)

var (
	ErrProducerClosed = errors.New("kafka producer is closed")
	ErrConsumerClosed = errors.New("kafka consumer is closed")
)

// PermanentError marks a message as unprocessable: the consumer routes
// it to the DLQ instead of retrying.
type PermanentError struct {
	Message string
	Err     error
}

func NewPermanentError(message string, err error) *PermanentError {
	return &PermanentError{Message: message, Err: err}
}

func (e *PermanentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("permanent error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("permanent error: %s", e.Message)
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

func IsPermanent(err error) bool {
	var perm *PermanentError
	return errors.As(err, &perm)
}
