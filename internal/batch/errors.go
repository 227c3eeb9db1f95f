package batch

import "errors"

// Error definitions for batch package.
var (
	ErrNothingToUpdate    = errors.New("nothing to update")
	ErrMultipleProjects   = errors.New("cannot batch add a milestone when issues belong to multiple projects")
	ErrNoProject          = errors.New("issues do not belong to a project")
	ErrDeclined           = errors.New("cancelled")
	ErrUpdateUnsuccessful = errors.New("batch update reported failure")
)
