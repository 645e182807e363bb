// Package monitor consumes the backend's live activity stream over
// WebSocket. The socket authenticates via a token query parameter because
// WebSocket upgrade requests cannot carry an Authorization header from
// every client.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	streamPath   = "/monitor/ws"
	pingInterval = 30 * time.Second
	readLimit    = 64 * 1024
)

// Handler receives decoded activity events.
type Handler func(ActivityEvent)

// Client is a read-mostly WebSocket consumer of the activity feed.
type Client struct {
	baseURL string
	token   func() string
	log     zerolog.Logger
}

// New creates a monitor client. baseURL is the HTTP API base; the scheme
// is rewritten for the socket.
func New(baseURL string, token func() string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		log:     log.With().Str("component", "monitor").Logger(),
	}
}

// streamURL converts the HTTP base URL into the ws/wss stream endpoint.
func (c *Client) streamURL() (string, error) {
	u, err := url.Parse(c.baseURL + streamPath)
	if err != nil {
		return "", fmt.Errorf("parse stream URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	q := u.Query()
	q.Set("token", c.token())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Stream connects, subscribes, and delivers activity events to handle
// until ctx is cancelled or the connection drops.
func (c *Client) Stream(ctx context.Context, handle Handler) error {
	target, err := c.streamURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("connect activity stream: %w", err)
	}
	defer conn.Close()
	conn.SetReadLimit(readLimit)

	if err := conn.WriteJSON(SubscribeRequest{Action: ActionSubscribe}); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	c.log.Info().Msg("Activity stream connected")

	// Close the socket on cancellation so the read loop unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				conn.Close()
				return
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteJSON(PingRequest{Action: ActionPing}); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read activity stream: %w", err)
		}

		var envelope EventEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			c.log.Debug().Err(err).Msg("Discarding malformed frame")
			continue
		}

		switch envelope.Event {
		case EventActivity:
			var ev ActivityEvent
			if err := json.Unmarshal(raw, &ev); err != nil {
				c.log.Debug().Err(err).Msg("Discarding malformed activity event")
				continue
			}
			handle(ev)

		case EventPong:
			// Keepalive acknowledgement.

		case EventError:
			var ev ErrorEvent
			if err := json.Unmarshal(raw, &ev); err == nil {
				c.log.Warn().Str("message", ev.Message).Msg("Stream error event")
			}

		default:
			c.log.Debug().Str("event", string(envelope.Event)).Msg("Ignoring unknown event")
		}
	}
}
