package binder

import "fmt"

// CapacityError indicates a placement or page append would exceed the
// binder's page ceiling. The layout is left unchanged.
type CapacityError struct {
	MaxPage int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("binder is full: page limit of %d reached", e.MaxPage)
}

// TemplateNotFoundError indicates an unknown binder template id.
type TemplateNotFoundError struct {
	ID string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("binder template %q not found", e.ID)
}
