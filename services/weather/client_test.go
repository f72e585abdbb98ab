package weather

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestCurrentParsesConditions(t *testing.T) {
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/forecast" {
				t.Fatalf("unexpected path %q", req.URL.Path)
			}
			q := req.URL.Query()
			if q.Get("current_weather") != "true" {
				t.Fatalf("expected current_weather=true, got %q", q.Get("current_weather"))
			}
			if q.Get("latitude") == "" || q.Get("longitude") == "" {
				t.Fatal("expected latitude and longitude params")
			}
			body := bytes.NewBufferString(`{"current_weather":{"weathercode":71,"temperature":-3.5}}`)
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(body), Header: make(http.Header)}, nil
		}),
	}

	c := NewClient("http://weather.test", httpc)
	cond, err := c.Current(context.Background(), 52.52, 13.405)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if cond.Code != 71 {
		t.Fatalf("expected code 71, got %d", cond.Code)
	}
	if cond.Temperature != -3.5 {
		t.Fatalf("expected -3.5, got %v", cond.Temperature)
	}
}

func TestCurrentDoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			calls++
			body := bytes.NewBufferString(`{"error":true}`)
			return &http.Response{StatusCode: http.StatusBadRequest, Status: "400 Bad Request", Body: io.NopCloser(body), Header: make(http.Header)}, nil
		}),
	}

	c := NewClient("http://weather.test", httpc)
	if _, err := c.Current(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt for a client error, got %d", calls)
	}
}
