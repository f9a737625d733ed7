// Command tester is a tiny event-stream client used during development.
// It connects to the SSE endpoint with a token and prints every frame it
// decodes, colorized by event type.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string `env:"MUSIC_SERVER_ADDR,default=localhost:8080"`
	Token         string `env:"MUSIC_TOKEN,required=true"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Tester error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	endpoint := url.URL{
		Scheme:   "http",
		Host:     config.ServerAddress,
		Path:     "/api/sse/events",
		RawQuery: url.Values{"token": {config.Token}}.Encode(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return exitRuntime, err
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to %s: %w", config.ServerAddress, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return exitRuntime, fmt.Errorf("server refused stream: %s", res.Status)
	}

	color.New(color.BgBlack, color.FgGreen).Printf("Connected to %s\n", config.ServerAddress)

	// Decode the stream frame by frame: an event line, a data line and a
	// blank separator line.
	scanner := bufio.NewScanner(res.Body)
	var eventType string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data := strings.TrimPrefix(line, "data: ")
			render(eventType, data)
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return exitRuntime, fmt.Errorf("stream read failed: %w", err)
	}
	return exitOK, nil
}

func render(eventType, data string) {
	switch eventType {
	case "heartbeat":
		color.Gray.Printf("[%s] %s\n", eventType, data)
	case "liveUsers":
		color.Magenta.Printf("[%s] %s\n", eventType, data)
	case "friendRequest", "friends":
		color.Cyan.Printf("[%s] %s\n", eventType, data)
	default:
		color.Green.Printf("[%s] %s\n", eventType, data)
	}
}
