package youtube

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
)

// The only two failures callers ever show to a user.
var (
	ErrFetchVideos           = errors.New("failed to fetch videos")
	ErrFetchChannelAnalytics = errors.New("failed to fetch channel analytics")
)

var errChannelNotFound = errors.New("channel not found")

// Kind classifies why a fetch failed.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindInvalidResponse
	KindQuotaExceeded
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network_failure"
	case KindInvalidResponse:
		return "invalid_response"
	case KindQuotaExceeded:
		return "quota_exceeded"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by every Client operation. Op is ErrFetchVideos or
// ErrFetchChannelAnalytics; Err is the underlying cause.
type Error struct {
	Op   error
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap lets errors.Is match both the operation sentinel and the cause.
func (e *Error) Unwrap() []error {
	return []error{e.Op, e.Err}
}

func newError(op, err error) *Error {
	return &Error{Op: op, Kind: classify(err), Err: err}
}

// KindOf returns the Kind of err, or 0 if err did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func classify(err error) Kind {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return KindQuotaExceeded
		}
		for _, item := range apiErr.Errors {
			switch item.Reason {
			case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded", "userRateLimitExceeded":
				return KindQuotaExceeded
			}
		}
		// An upstream 5xx says nothing about the payload, so it counts as a
		// failed round trip.
		if apiErr.Code >= http.StatusInternalServerError {
			return KindNetwork
		}
		return KindInvalidResponse
	}

	if errors.Is(err, errChannelNotFound) {
		return KindInvalidResponse
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindInvalidResponse
	}

	return KindNetwork
}
