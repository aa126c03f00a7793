package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNotReady        = fmt.Errorf("playback session not ready")
	ErrNoCredentials   = fmt.Errorf("no stored credentials")
	ErrAuthFailed      = fmt.Errorf("authorization failed")
	ErrBrokerExhausted = fmt.Errorf("token broker unreachable after all attempts")
	ErrTimeout         = fmt.Errorf("operation timed out")

	// API and playback errors
	ErrAPIRequest     = fmt.Errorf("API request failed")
	ErrNothingPlaying = fmt.Errorf("nothing is currently playing")

	// Dislike store errors
	ErrStoreUnavailable = fmt.Errorf("dislike store unavailable")
	ErrInvalidID        = fmt.Errorf("invalid item id")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
