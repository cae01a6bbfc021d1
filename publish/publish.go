// Package publish delivers diff reports to NATS subscribers.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360studio/ontodiff/report"
)

// MessageType identifies report messages on the wire.
const MessageType = "ontodiff.report.v1"

// ReportMessage is the message format for published reports.
type ReportMessage struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Summary     report.Summary `json:"summary"`
	Report      *report.Report `json:"report"`
	PublishedAt time.Time      `json:"published_at"`
}

// Publisher sends reports somewhere.
type Publisher interface {
	Publish(ctx context.Context, rep *report.Report) error
	Close() error
}

// Nop discards every report. It stands in when no server is configured.
type Nop struct{}

func (Nop) Publish(context.Context, *report.Report) error { return nil }
func (Nop) Close() error                                  { return nil }

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	PublishMsg(m *nats.Msg) error
	FlushWithContext(ctx context.Context) error
	Drain() error
}

// Config configures a NATS publisher.
type Config struct {
	URL     string
	Subject string
	Timeout time.Duration
	Logger  *slog.Logger
}

// NATSPublisher publishes JSON report messages to one subject.
type NATSPublisher struct {
	conn    conn
	subject string
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// Connect dials the server at cfg.URL.
func Connect(cfg Config) (*NATSPublisher, error) {
	opts := []nats.Option{nats.Name("ontodiff")}
	if cfg.Timeout > 0 {
		opts = append(opts, nats.Timeout(cfg.Timeout))
	}
	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return newPublisher(nc, cfg), nil
}

func newPublisher(c conn, cfg Config) *NATSPublisher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NATSPublisher{conn: c, subject: cfg.Subject, timeout: timeout, logger: logger, now: time.Now}
}

// Publish sends rep and waits for the server to acknowledge the flush. The
// run ID doubles as the Nats-Msg-Id header so JetStream streams on the
// subject drop redeliveries.
func (p *NATSPublisher) Publish(ctx context.Context, rep *report.Report) error {
	if rep == nil {
		return nil
	}

	msg := ReportMessage{
		ID:          rep.RunID,
		Type:        MessageType,
		Summary:     rep.Summary,
		Report:      rep,
		PublishedAt: p.now().UTC(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal report message: %w", err)
	}

	m := nats.NewMsg(p.subject)
	m.Data = data
	m.Header.Set(nats.MsgIdHdr, rep.RunID)
	m.Header.Set("Content-Type", "application/json")

	if err := p.conn.PublishMsg(m); err != nil {
		return fmt.Errorf("publish to %s: %w", p.subject, err)
	}

	flushCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.conn.FlushWithContext(flushCtx); err != nil {
		return fmt.Errorf("flush %s: %w", p.subject, err)
	}

	p.logger.Info("Published report",
		slog.String("subject", p.subject),
		slog.String("run_id", rep.RunID),
		slog.Int("bytes", len(data)))
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
