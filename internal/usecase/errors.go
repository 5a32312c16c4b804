package usecase

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrSessionNotFound  = errors.New("assessment session not found")
	ErrNotSubmittable   = errors.New("assessment is not ready to submit")
	ErrAnalysisNotReady = errors.New("analysis has not completed")
)
