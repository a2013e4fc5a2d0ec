package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v68/github"
)

var (
	// ErrUnauthorized signals a rejected or insufficient token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited signals an exhausted API quota.
	ErrRateLimited = errors.New("rate limited")
	// ErrNotFound signals a missing repository, PR or user.
	ErrNotFound = errors.New("not found")
	// ErrDecode signals a response payload that could not be interpreted.
	ErrDecode = errors.New("malformed response")
	// ErrNetwork signals transport-level failure; the cause is carried in
	// the message.
	ErrNetwork = errors.New("network failure")
)

// mapError folds go-github errors into the client's error taxonomy. Callers
// classify with errors.Is against the sentinels above; everything that is
// neither an API status nor a decode problem degrades to ErrNetwork with the
// underlying detail preserved.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: quota resets %s", ErrRateLimited, rateErr.Rate.Reset.Format("15:04:05"))
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: secondary limit", ErrRateLimited)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		code := respErr.Response.StatusCode
		switch code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrUnauthorized, respErr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, respErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, respErr.Message)
		}
		return fmt.Errorf("%w: github responded %d: %s", ErrNetwork, code, respErr.Message)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
