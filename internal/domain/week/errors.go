package week

import "errors"

var (
	ErrWeekNotFound  = errors.New("week not found")
	ErrDuplicateWeek = errors.New("week already marked processed")
)
