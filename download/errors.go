package download

import "fmt"

// NetworkError reports a fetch that could not be completed: a malformed url,
// a connection or dns failure, a timeout, or a non-success http status.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotImageError reports a response whose declared content type is not an
// image type.
type NotImageError struct {
	URL         string
	ContentType string
}

func (e *NotImageError) Error() string {
	return fmt.Sprintf("not an image, got %s", e.ContentType)
}
