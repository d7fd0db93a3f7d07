package ingestion

import "errors"

var (
	// ErrFinderRequired is returned when a Pipeline is built without a finder.
	ErrFinderRequired = errors.New("finder required")

	// ErrPipelineReleased is returned by Run after Release.
	ErrPipelineReleased = errors.New("pipeline released")
)
