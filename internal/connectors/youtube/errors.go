package youtube

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Common YouTube API errors.
var (
	// ErrVideoNotFound indicates the API returned no video for the ID.
	ErrVideoNotFound = errors.New("youtube: video not found")

	// ErrUnauthorized indicates an invalid API key.
	ErrUnauthorized = errors.New("youtube: unauthorised (invalid API key)")

	// ErrForbidden indicates the key may not call the API.
	ErrForbidden = errors.New("youtube: forbidden")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("youtube: rate limit exceeded")

	// ErrQuotaExceeded indicates the daily quota is used up.
	ErrQuotaExceeded = errors.New("youtube: quota exceeded")
)

// quotaReasons are googleapi error reasons that mean the quota is spent.
var quotaReasons = map[string]bool{
	"quotaExceeded":      true,
	"dailyLimitExceeded": true,
}

// IsNotFound returns true if the error indicates a missing video.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrVideoNotFound) {
		return true
	}
	return statusCode(err) == http.StatusNotFound
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	return statusCode(err) == http.StatusTooManyRequests
}

// IsQuotaExceeded returns true if the error indicates an exhausted quota.
// The API reports this as 403 with a quota reason.
func IsQuotaExceeded(err error) bool {
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	for _, item := range gerr.Errors {
		if quotaReasons[item.Reason] {
			return true
		}
	}
	return false
}

func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// WrapError converts a Google API error to one of the package errors.
// Errors that are not API errors are returned unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	if IsQuotaExceeded(err) {
		return ErrQuotaExceeded
	}

	switch gerr.Code {
	case http.StatusBadRequest, http.StatusUnauthorized:
		// An invalid key comes back as 400 keyInvalid.
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrVideoNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return err
	}
}
