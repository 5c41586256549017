// Package notify publishes parse and upload progress to a socket.io server.
package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/mpipgo/internal/ctxlog"
	"github.com/specialistvlad/mpipgo/internal/model"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names emitted by the Publisher.
const (
	EventRecordParsed = "record.parsed"
	EventRecordFailed = "record.failed"
	EventUploadDone   = "upload.done"
)

// DefaultConnectTimeout bounds the wait for the initial connection.
const DefaultConnectTimeout = 15 * time.Second

// emitter is the part of a socket.io client the Publisher needs.
type emitter interface {
	Emit(event string, args ...any) error
}

// Publisher emits progress events. It implements executor.Observer and is
// safe for concurrent use.
type Publisher struct {
	mu    sync.Mutex
	conn  emitter
	close func()
}

// Options configures Dial.
type Options struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Dial connects to a socket.io server and waits for the connection to be
// acknowledged.
func Dial(ctx context.Context, o Options) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("url", o.URL)
	logger.Debug("Connecting to notification server.")

	parsedURL, err := url.Parse(o.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("notification URL %q must include scheme and host", o.URL)
	}

	namespace := o.Namespace
	if namespace == "" {
		namespace = "/"
	}

	timeout := o.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to notification server.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return newPublisher(io, func() { io.Disconnect() }), nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

func newPublisher(conn emitter, closeFn func()) *Publisher {
	return &Publisher{conn: conn, close: closeFn}
}

// DocumentParsed emits record.parsed.
func (p *Publisher) DocumentParsed(ctx context.Context, path string, rec *model.ParsedRecord) {
	p.emit(ctx, EventRecordParsed, map[string]any{
		"path":           path,
		"interface_type": rec.InterfaceType,
		"num_nodes":      rec.RunInfo.NumNodes,
	})
}

// DocumentFailed emits record.failed.
func (p *Publisher) DocumentFailed(ctx context.Context, path string, err error) {
	p.emit(ctx, EventRecordFailed, map[string]any{
		"path":  path,
		"error": err.Error(),
	})
}

// UploadDone emits upload.done with the number of stored and failed records.
func (p *Publisher) UploadDone(ctx context.Context, stored, failed int) {
	p.emit(ctx, EventUploadDone, map[string]any{
		"stored": stored,
		"failed": failed,
	})
}

// Close disconnects from the server.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.close != nil {
		p.close()
		p.close = nil
	}
	p.conn = nil
}

// emit never fails the caller; notification is best effort.
func (p *Publisher) emit(ctx context.Context, event string, payload map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return
	}
	if err := p.conn.Emit(event, payload); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to emit notification.", "event", event, "error", err)
	}
}
