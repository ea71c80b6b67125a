package unprompted

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const fieldTemperature = "temperature"

// exchange carries per-call state between Complete and exchangeTransport
type exchange struct {
	// zeroTemperature forces "temperature":0 into the request body.
	// The client library drops a zero temperature from the JSON.
	zeroTemperature bool
	// responseBody is the raw body the server answered with
	responseBody []byte
}

type exchangeKey struct{}

// exchangeTransport wraps the client transport for the OpenAI backend.
// Requests without an exchange in their context pass through untouched.
type exchangeTransport struct {
	next http.RoundTripper
}

func (t *exchangeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ex, ok := req.Context().Value(exchangeKey{}).(*exchange)
	if !ok {
		return t.next.RoundTrip(req)
	}

	if ex.zeroTemperature && req.Body != nil {
		rewritten, err := withZeroTemperature(req)
		if err != nil {
			return nil, err
		}
		req = rewritten
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	ex.responseBody = body
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

// withZeroTemperature returns a clone of req whose JSON body has an
// explicit zero temperature. Bodies that are not JSON objects are kept.
func withZeroTemperature(req *http.Request) (*http.Request, error) {
	body, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if json.Unmarshal(body, &fields) == nil && fields != nil {
		fields[fieldTemperature] = json.RawMessage("0")
		if encoded, err := json.Marshal(fields); err == nil {
			body = encoded
		}
	}

	clone := req.Clone(req.Context())
	clone.Body = io.NopCloser(bytes.NewReader(body))
	clone.ContentLength = int64(len(body))
	clone.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(string(body))), nil
	}
	return clone, nil
}
