package server

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eternalApril/respwire/internal/resp"
)

// errPeerStopped is returned by ReadValue once the server asked the peer to stop
var errPeerStopped = errors.New("peer stopped")

// Peer represents a connected client.
// It wraps a network connection and provides synchronized methods for reading and writing RESP-encoded data
type Peer struct {
	conn        net.Conn
	buf         []byte
	writer      *resp.Encoder
	codec       []resp.Option
	idleTimeout time.Duration
	stopped     atomic.Bool
	mu          sync.Mutex
}

// NewPeer initializes a new client peer from a network connection.
// Every frame has to arrive in a single read of at most bufSize bytes
func NewPeer(conn net.Conn, bufSize int, idleTimeout time.Duration, codec ...resp.Option) *Peer {
	return &Peer{
		conn:        conn,
		buf:         make([]byte, bufSize),
		writer:      resp.NewEncoder(conn, codec...),
		codec:       codec,
		idleTimeout: idleTimeout,
	}
}

// ReadValue reads once from the connection and decodes the bytes as exactly one RESP value.
// Bytes that do not form a complete value yield an error matching resp.ErrMalformedInput
func (p *Peer) ReadValue() (resp.Value, error) {
	var deadline time.Time
	if p.idleTimeout > 0 {
		deadline = time.Now().Add(p.idleTimeout)
	}
	if err := p.conn.SetReadDeadline(deadline); err != nil {
		return resp.Value{}, err
	}

	// checked after the deadline is set so a concurrent interrupt cannot be overwritten
	if p.stopped.Load() {
		return resp.Value{}, errPeerStopped
	}

	n, err := p.conn.Read(p.buf)
	if n == 0 {
		if err == nil {
			err = io.ErrNoProgress
		}
		return resp.Value{}, err
	}

	return resp.Parse(p.buf[:n], p.codec...)
}

// Send encodes and writes a RESP value to the client.
// This method is thread-safe and can be called from multiple goroutines
func (p *Peer) Send(v resp.Value) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.writer.Write(v); err != nil {
		return err
	}
	return p.writer.Flush()
}

// interrupt makes a pending ReadValue return immediately with a timeout error
func (p *Peer) interrupt() error {
	p.stopped.Store(true)
	return p.conn.SetReadDeadline(time.Now())
}

// RemoteAddr returns the client address
func (p *Peer) RemoteAddr() string {
	return p.conn.RemoteAddr().String()
}

// Close terminates the underlying network connection
func (p *Peer) Close() error {
	return p.conn.Close()
}
