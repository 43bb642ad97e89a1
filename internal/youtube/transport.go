package youtube

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi/transport"
)

// limitedTransport waits on a shared limiter before every outbound request
type limitedTransport struct {
	limiter *rate.Limiter
	base    http.RoundTripper
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// newHTTPClient builds the client every API call goes through: the API key is
// appended to each request, and requests are throttled when perSecond > 0.
// A zero timeout keeps the transport defaults.
func newHTTPClient(apiKey string, base http.RoundTripper, timeout time.Duration, perSecond float64) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}

	rt := base
	if perSecond > 0 {
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		rt = &limitedTransport{
			limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
			base:    rt,
		}
	}

	return &http.Client{
		Transport: &transport.APIKey{Key: apiKey, Transport: rt},
		Timeout:   timeout,
	}
}
