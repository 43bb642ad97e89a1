package youtube

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"quota reason", &googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}}}, KindQuotaExceeded},
		{"daily limit", &googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "dailyLimitExceeded"}}}, KindQuotaExceeded},
		{"status 429", &googleapi.Error{Code: 429}, KindQuotaExceeded},
		{"bad request", &googleapi.Error{Code: 400, Errors: []googleapi.ErrorItem{{Reason: "invalidParameter"}}}, KindInvalidResponse},
		{"not found", &googleapi.Error{Code: 404}, KindInvalidResponse},
		{"internal error", &googleapi.Error{Code: 500}, KindNetwork},
		{"bad gateway", &googleapi.Error{Code: 502}, KindNetwork},
		{"unavailable", &googleapi.Error{Code: 503, Errors: []googleapi.ErrorItem{{Reason: "backendError"}}}, KindNetwork},
		{"gateway timeout", &googleapi.Error{Code: 504}, KindNetwork},
		{"wrapped api error", errors.Wrap(&googleapi.Error{Code: 404}, "search"), KindInvalidResponse},
		{"channel missing", errors.Wrap(errChannelNotFound, "channel UC1"), KindInvalidResponse},
		{"json type", &json.UnmarshalTypeError{Value: "string"}, KindInvalidResponse},
		{"json syntax", &json.SyntaxError{}, KindInvalidResponse},
		{"anything else", errors.New("connection reset by peer"), KindNetwork},
		{"deadline", context.DeadlineExceeded, KindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestError_UnwrapsOpAndCause(t *testing.T) {
	cause := &googleapi.Error{Code: 429}
	err := error(newError(ErrFetchVideos, errors.Wrap(cause, "search request failed")))

	assert.True(t, errors.Is(err, ErrFetchVideos))
	assert.False(t, errors.Is(err, ErrFetchChannelAnalytics))

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 429, apiErr.Code)

	assert.Equal(t, KindQuotaExceeded, KindOf(err))
	assert.Contains(t, err.Error(), "failed to fetch videos")
	assert.Contains(t, err.Error(), "quota_exceeded")
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(errors.New("boom")))
	assert.Equal(t, "kind(0)", Kind(0).String())
}
