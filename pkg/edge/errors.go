package edge

import "errors"

var (
	ErrMotorFaulted       = errors.New("motor is faulted; emergency stop required")
	ErrDirectionAtSpeed   = errors.New("direction change rejected at nonzero speed")
	ErrUnknownPlugin      = errors.New("no driver registered for plugin")
	ErrDuplicateTrain     = errors.New("train assigned more than once")
	errAssignmentFetch    = errors.New("failed to fetch train assignments")
	errDriverStop         = errors.New("driver failed to stop")
	errUnsupportedCommand = errors.New("unsupported command action")
)
