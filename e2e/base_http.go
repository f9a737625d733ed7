package e2e

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests.
// The suite is skipped entirely when no server address is configured.
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("SERVER_ADDR not set, skipping e2e suite")
	}
	s.client = &http.Client{Timeout: 30 * time.Second}
}

// Step prints a colorized header for a scenario step in logs.
func (s *BaseHTTPSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// DoJSON performs one API call with optional bearer token, logging the
// exchange, and decodes the response into out when out is non-nil.
func (s *BaseHTTPSuite) DoJSON(method, path, token string, body, out any) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
		if s.Config.DebugJSON {
			s.T().Logf("REQUEST %s %s:\n%s", method, path, payload)
		}
	}

	endpoint := url.URL{Scheme: "http", Host: s.Config.ServerAddr, Path: path}
	req, err := http.NewRequest(method, endpoint.String(), reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := s.client.Do(req)
	s.Require().NoError(err, "Failed to reach server at "+s.Config.ServerAddr)
	defer func() { _ = res.Body.Close() }()

	data, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	s.T().Logf("HTTP %s %s [%d] in %v", method, path, res.StatusCode, time.Since(start))
	if s.Config.DebugJSON && len(data) > 0 {
		s.T().Logf("RESPONSE:\n%s", data)
	}

	if out != nil {
		s.Require().NoError(json.Unmarshal(data, out))
	}
	return res
}

// Frame is one decoded event from the push stream.
type Frame struct {
	Event string
	Data  string
}

// EventStream consumes the SSE endpoint in the background and exposes the
// decoded frames over a channel.
type EventStream struct {
	Frames <-chan Frame
	cancel context.CancelFunc
}

func (e *EventStream) Close() {
	e.cancel()
}

// WaitFor blocks until a frame of the wanted event type arrives.
func (e *EventStream) WaitFor(eventType string, timeout time.Duration) (Frame, bool) {
	deadline := time.After(timeout)
	for {
		select {
		case frame, ok := <-e.Frames:
			if !ok {
				return Frame{}, false
			}
			if frame.Event == eventType {
				return frame, true
			}
		case <-deadline:
			return Frame{}, false
		}
	}
}

// OpenStream connects to the SSE endpoint with the given token and starts
// decoding frames. The stream stays open until Close is called.
func (s *BaseHTTPSuite) OpenStream(token string) *EventStream {
	ctx, cancel := context.WithCancel(context.Background())

	endpoint := url.URL{
		Scheme:   "http",
		Host:     s.Config.ServerAddr,
		Path:     "/api/sse/events",
		RawQuery: url.Values{"token": {token}}.Encode(),
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	s.Require().NoError(err)

	// No client timeout here: the stream is expected to stay open.
	res, err := http.DefaultTransport.RoundTrip(req)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, res.StatusCode, "server refused the event stream")

	frames := make(chan Frame, 64)
	go func() {
		defer close(frames)
		defer func() { _ = res.Body.Close() }()

		scanner := bufio.NewScanner(res.Body)
		var eventType string
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				eventType = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				frames <- Frame{Event: eventType, Data: strings.TrimPrefix(line, "data: ")}
			}
		}
	}()

	return &EventStream{Frames: frames, cancel: cancel}
}
