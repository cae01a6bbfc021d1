package publish

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ontodiff/report"
)

type fakeConn struct {
	msgs     []*nats.Msg
	pubErr   error
	flushErr error
	drained  bool
}

func (f *fakeConn) PublishMsg(m *nats.Msg) error {
	if f.pubErr != nil {
		return f.pubErr
	}
	f.msgs = append(f.msgs, m)
	return nil
}

func (f *fakeConn) FlushWithContext(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("flush without deadline")
	}
	return f.flushErr
}

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

func sampleReport() *report.Report {
	return &report.Report{
		RunID:   "0b6c6f3e-4a8e-4f55-9d59-2f0b0a3c1d11",
		Summary: report.Summary{NewClasses: 2, AddedRelations: 3},
	}
}

func TestPublish(t *testing.T) {
	fc := &fakeConn{}
	p := newPublisher(fc, Config{Subject: "ontodiff.reports"})
	p.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, p.Publish(context.Background(), sampleReport()))
	require.Len(t, fc.msgs, 1)

	m := fc.msgs[0]
	assert.Equal(t, "ontodiff.reports", m.Subject)
	assert.Equal(t, "0b6c6f3e-4a8e-4f55-9d59-2f0b0a3c1d11", m.Header.Get(nats.MsgIdHdr))

	var decoded ReportMessage
	require.NoError(t, json.Unmarshal(m.Data, &decoded))
	assert.Equal(t, MessageType, decoded.Type)
	assert.Equal(t, 2, decoded.Summary.NewClasses)
	assert.Equal(t, 3, decoded.Report.Summary.AddedRelations)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), decoded.PublishedAt)

	require.NoError(t, p.Close())
	assert.True(t, fc.drained)
}

func TestPublishErrors(t *testing.T) {
	boom := errors.New("boom")

	p := newPublisher(&fakeConn{pubErr: boom}, Config{Subject: "s"})
	assert.ErrorIs(t, p.Publish(context.Background(), sampleReport()), boom)

	p = newPublisher(&fakeConn{flushErr: boom}, Config{Subject: "s"})
	assert.ErrorIs(t, p.Publish(context.Background(), sampleReport()), boom)

	fc := &fakeConn{}
	p = newPublisher(fc, Config{Subject: "s"})
	require.NoError(t, p.Publish(context.Background(), nil))
	assert.Empty(t, fc.msgs)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), sampleReport()))
	assert.NoError(t, p.Close())
}

func TestConnectFailure(t *testing.T) {
	_, err := Connect(Config{URL: "nats://127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
