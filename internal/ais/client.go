// Package ais streams vessel position reports from aisstream.io over a
// websocket subscription and converts them into engine-ready reports. The
// stream reconnects with linear backoff and keeps the connection alive with
// periodic pings.
package ais

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/banshee-data/allision.report/internal/monitoring"
)

const (
	dialTimeout       = 5 * time.Second
	subscribeTimeout  = 5 * time.Second
	heartbeatTimeout  = 10 * time.Second
	heartbeatInterval = 30 * time.Second
	backoffStep       = 5 * time.Second
	backoffMax        = 30 * time.Second
)

// SubMsg is the aisstream.io subscription message sent after connecting.
type SubMsg struct {
	APIKey             string        `json:"APIKey"`
	BoundingBoxes      [][][]float64 `json:"BoundingBoxes"`
	FiltersShipMMSI    []string      `json:"FiltersShipMMSI,omitempty"`
	FilterMessageTypes []string      `json:"FilterMessageTypes,omitempty"`
}

// Config is the stream configuration loaded from the app config file.
type Config struct {
	URL                string        `json:"url"`
	APIKey             string        `json:"api_key"`
	BoundingBoxes      [][][]float64 `json:"bounding_boxes"`
	FilterMessageTypes []string      `json:"filter_message_types,omitempty"`
}

// Client maintains the websocket subscription and delivers raw message
// payloads on Msg until its context is cancelled.
type Client struct {
	url  string
	sub  SubMsg
	conn *websocket.Conn

	// Msg carries raw message payloads from the stream.
	Msg chan []byte
}

// NewClient builds a stream client from config. Stream delivery does not
// begin until Run is called.
func NewClient(cfg Config) *Client {
	return &Client{
		url: cfg.URL,
		sub: SubMsg{
			APIKey:             cfg.APIKey,
			BoundingBoxes:      cfg.BoundingBoxes,
			FilterMessageTypes: cfg.FilterMessageTypes,
		},
		Msg: make(chan []byte),
	}
}

func (c *Client) connect(ctx context.Context) error {
	hc := &http.Client{Timeout: dialTimeout}

	conn, _, err := websocket.Dial(ctx, c.url, &websocket.DialOptions{HTTPClient: hc})
	if err != nil {
		return fmt.Errorf("could not connect to websocket: %w", err)
	}
	c.conn = conn
	return nil
}

func (c *Client) subscribe(ctx context.Context) error {
	b, err := json.Marshal(c.sub)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription message: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, subscribeTimeout)
	defer cancel()

	if err := c.conn.Write(writeCtx, websocket.MessageText, b); err != nil {
		return fmt.Errorf("failed to write subscription message to websocket: %w", err)
	}

	return nil
}

// Run connects, subscribes, and relays stream payloads to Msg until ctx is
// cancelled. Connection failures back off linearly up to a cap and retry.
func (c *Client) Run(ctx context.Context) error {
	backoff := time.Duration(0)

	for {
		if err := sleepCtx(ctx, backoff); err != nil {
			return err
		}

		if err := c.connect(ctx); err != nil {
			monitoring.Logf("ais connect failed: %v", err)
			backoff = nextBackoff(backoff)
			continue
		}

		if err := c.subscribe(ctx); err != nil {
			monitoring.Logf("ais subscribe failed: %v", err)
			c.conn.Close(websocket.StatusNormalClosure, "")
			backoff = nextBackoff(backoff)
			continue
		}

		hbCtx, stopHeartbeat := context.WithCancel(ctx)
		go c.heartbeat(hbCtx)

		err := c.readLoop(ctx)
		stopHeartbeat()
		c.conn.Close(websocket.StatusNormalClosure, "")

		if ctx.Err() != nil {
			return ctx.Err()
		}

		monitoring.Logf("ais read failed: %v", err)
		backoff = nextBackoff(backoff)
	}
}

func (c *Client) readLoop(ctx context.Context) error {
	for {
		_, b, err := c.conn.Read(ctx)
		if err != nil {
			return err
		}

		select {
		case c.Msg <- b:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// heartbeat pings the server at heartbeatInterval. A ping that cannot be
// written within heartbeatTimeout closes the connection, which surfaces as
// a read failure in readLoop and triggers a reconnect. This allows reads
// without per-read context timeouts for low volume subscriptions.
func (c *Client) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, heartbeatTimeout)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

func nextBackoff(current time.Duration) time.Duration {
	next := current + backoffStep
	if next > backoffMax {
		next = backoffMax
	}
	return next
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
