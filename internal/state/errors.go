package state

import "errors"

var (
	ErrScreenNotFound  = errors.New("screen not found")
	ErrContentNotFound = errors.New("content not found")
	ErrSampleContent   = errors.New("sample content cannot be deleted")
	ErrScreenOffline   = errors.New("screen is offline")

	// broadcast preconditions; violating any of them mutates nothing
	ErrNoContentSelected = errors.New("no content selected")
	ErrNoScreensSelected = errors.New("no screens selected")
	ErrNoScheduleTime    = errors.New("schedule time required")
)
