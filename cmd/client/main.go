package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"chirptalks/domain"
	"chirptalks/domain/event"
	"chirptalks/projection"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const maxRenderedRows = 20

// Config defines the client-side environment variables.
type Config struct {
	ServerURL string `envconfig:"CHIRPTALKS_URL" default:"http://localhost:8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"INFO"`
	Colours   bool   `envconfig:"CLIENT_COLOURS" default:"true"`
}

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run seeds the local feed cache from the list endpoint, then follows the
// event stream and re-renders the cache after every applied event.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feed := projection.NewFeed()

	// 3. Seed the cache with the server's canonical list.
	if err := seed(ctx, config.ServerURL, feed); err != nil {
		return exitRuntime, err
	}
	render(feed, config.Colours)

	// 4. Follow the event stream until the context is canceled.
	log.Info("Connected, following live feed (Ctrl+C to quit)...", "server", config.ServerURL)
	if err := follow(ctx, config, feed); err != nil {
		if ctx.Err() != nil {
			log.Info("Stopping client...")
			return exitOK, nil
		}
		return exitRuntime, err
	}
	return exitOK, nil
}

func seed(ctx context.Context, serverURL string, feed *projection.Feed) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL+"/messages", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach server at %s: %w", serverURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d while fetching messages", resp.StatusCode)
	}

	var messages []domain.Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return fmt.Errorf("invalid message list: %w", err)
	}
	feed.Seed(messages)
	return nil
}

// follow reads Server-Sent Events frames and applies them to the cache.
// It returns when the stream closes or the context is canceled.
func follow(ctx context.Context, config Config, feed *projection.Feed) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.ServerURL+"/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d on event stream", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	var eventName, data string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			eventName = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if eventName == "" || data == "" {
				continue
			}
			evt, err := decodeEvent(eventName, []byte(data))
			if err != nil {
				return fmt.Errorf("stream error: %w", err)
			}
			feed.Consume(evt)
			render(feed, config.Colours)
			eventName, data = "", ""
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

func decodeEvent(name string, data []byte) (event.DomainEvent, error) {
	switch name {
	case event.MessageCreated{}.EventName():
		var e event.MessageCreated
		return e, json.Unmarshal(data, &e.Message)
	case event.MessageUpdated{}.EventName():
		var e event.MessageUpdated
		return e, json.Unmarshal(data, &e.Message)
	case event.MessageDeleted{}.EventName():
		var payload struct {
			ID uuid.UUID `json:"id"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		return event.MessageDeleted{ID: payload.ID}, nil
	default:
		return nil, fmt.Errorf("unknown event %q", name)
	}
}

// render prints the newest messages as a table.
func render(feed *projection.Feed, colours bool) {
	messages := feed.Snapshot()
	if len(messages) > maxRenderedRows {
		messages = messages[:maxRenderedRows]
	}

	header := fmt.Sprintf("  ====== ChirpTalks feed (%d messages) ======", feed.Len())
	if colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "Author", "Message", "Likes", "Comments", "Lang"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, m := range messages {
		table.Append([]string{
			m.CreatedAt.Local().Format(time.TimeOnly),
			m.Author.Username,
			m.Content,
			fmt.Sprintf("%d", m.Likes()),
			fmt.Sprintf("%d", len(m.Comments)),
			m.Lang,
		})
	}
	table.Render()
}
