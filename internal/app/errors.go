package app

import "fmt"

// OpenError reports a failure to hand an item to the OS default handler or
// launcher. It surfaces as a toast; the window itself stays usable.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
