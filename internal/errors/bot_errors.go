package errors

import (
	"fmt"
)

// ErrorCategory classifies failures for the agent's recovery decisions.
type ErrorCategory string

const (
	// Critical errors that should stop the bot.
	ErrorCategoryFatal         ErrorCategory = "FATAL"
	ErrorCategoryCredentials   ErrorCategory = "CREDENTIALS"
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"

	// Recoverable errors: the cycle is skipped and the loop continues.
	ErrorCategoryExchange ErrorCategory = "EXCHANGE"
	ErrorCategoryNetwork  ErrorCategory = "NETWORK"
	ErrorCategoryProvider ErrorCategory = "PROVIDER"
	ErrorCategoryAnalysis ErrorCategory = "ANALYSIS"
	ErrorCategoryRisk     ErrorCategory = "RISK"
)

// BotError is a categorized error with component context.
type BotError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Underlying error
}

func (e *BotError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Component, e.Operation, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Component, e.Operation)
}

func (e *BotError) Unwrap() error {
	return e.Underlying
}

// IsFatal reports whether this error should stop the bot.
func (e *BotError) IsFatal() bool {
	switch e.Category {
	case ErrorCategoryFatal, ErrorCategoryCredentials, ErrorCategoryConfiguration:
		return true
	}
	return false
}

// Wrap attaches bot error context to an existing error.
func Wrap(err error, category ErrorCategory, component, operation string) *BotError {
	return &BotError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Underlying: err,
	}
}
