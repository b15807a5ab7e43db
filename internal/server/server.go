package server

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/eternalApril/respwire/internal/config"
	"github.com/eternalApril/respwire/internal/resp"
)

const internalErrorReply = "ERR internal error"

var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// Server accepts TCP connections and runs every decoded value through a Handler
type Server struct {
	cfg     config.ServerConfig
	codec   []resp.Option
	handler Handler
	logger  *zap.Logger

	listener net.Listener
	closing  atomic.Bool
	wg       sync.WaitGroup

	mu    sync.Mutex
	peers map[*Peer]struct{}
}

// New creates a server for cfg. A nil handler means Echo
func New(cfg *config.Config, handler Handler, logger *zap.Logger) *Server {
	if handler == nil {
		handler = Echo
	}

	return &Server{
		cfg:     cfg.Server,
		codec:   []resp.Option{resp.WithMaxDepth(cfg.Codec.MaxDepth)},
		handler: handler,
		logger:  logger,
		peers:   make(map[*Peer]struct{}),
	}
}

// Listen binds the configured address
func (s *Server) Listen() error {
	address := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	s.listener = listener

	s.logger.Info("listening on", zap.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound address, nil before Listen
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until the listener is closed by Shutdown or Close
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server: Serve called before Listen")
	}

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("Accept error", zap.Error(err))
			continue
		}

		peer := NewPeer(conn, s.cfg.ReadBuffer, s.cfg.IdleTimeout, s.codec...)
		if !s.track(peer) {
			peer.Close() //nolint:errcheck
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(peer)
		}()
	}
}

// ListenAndServe combines Listen and Serve
func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown stops accepting, wakes idle connections so they finish after their current frame,
// and waits for them until ctx is done. Connections still open at that point are closed
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.closeListener()

	s.mu.Lock()
	for peer := range s.peers {
		err = multierr.Append(err, ignoreClosed(peer.interrupt()))
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("All connections closed gracefully")
		return err
	case <-ctx.Done():
		s.logger.Warn("Shutdown timed out, forcing close")
		return multierr.Combine(err, s.Close(), ctx.Err())
	}
}

// Close immediately closes the listener and every open connection
func (s *Server) Close() error {
	err := s.closeListener()

	s.mu.Lock()
	for peer := range s.peers {
		err = multierr.Append(err, ignoreClosed(peer.Close()))
	}
	s.mu.Unlock()

	return err
}

func (s *Server) closeListener() error {
	s.closing.Store(true)
	if s.listener == nil {
		return nil
	}
	return ignoreClosed(s.listener.Close())
}

// track registers peer unless the server is already going away
func (s *Server) track(peer *Peer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closing.Load() {
		return false
	}
	s.peers[peer] = struct{}{}
	return true
}

func (s *Server) untrack(peer *Peer) {
	s.mu.Lock()
	delete(s.peers, peer)
	s.mu.Unlock()
}

// handleConnection handles a connection for a single user
func (s *Server) handleConnection(peer *Peer) {
	log := s.logger.With(zap.String("addr", peer.RemoteAddr()))
	if log.Core().Enabled(zap.DebugLevel) {
		log.Debug("client connected")
	}

	defer func() {
		s.untrack(peer)
		peer.Close() //nolint:errcheck
		if log.Core().Enabled(zap.DebugLevel) {
			log.Debug("client disconnected")
		}
	}()

	for {
		req, err := peer.ReadValue()
		if err != nil {
			s.readFailed(peer, log, err)
			return
		}

		if log.Core().Enabled(zap.DebugLevel) {
			log.Debug("request decoded", zap.Stringer("type", req.Type))
		}

		res := s.handler.ServeRESP(req)

		err = peer.Send(res)
		if errors.Is(err, resp.ErrInvalidValue) {
			log.Error("handler returned an unencodable value", zap.Error(err))
			err = peer.Send(resp.MakeError(internalErrorReply))
		}
		if err != nil {
			log.Error("error writing response", zap.Error(err))
			return
		}
	}
}

// readFailed reports why the read loop ends. Malformed frames get a protocol error reply first
func (s *Server) readFailed(peer *Peer, log *zap.Logger, err error) {
	var netErr net.Error

	switch {
	case errors.Is(err, resp.ErrMalformedInput):
		log.Warn("malformed frame", zap.Error(err))
		reply := resp.MakeError("ERR Protocol error: " + lineBreaks.Replace(err.Error()))
		if err := peer.Send(reply); err != nil {
			log.Debug("protocol error reply failed", zap.Error(err))
		}
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed), errors.Is(err, errPeerStopped):
	case errors.As(err, &netErr) && netErr.Timeout():
		if !s.closing.Load() {
			log.Debug("idle timeout")
		}
	default:
		log.Warn("read failed", zap.Error(err))
	}
}

func ignoreClosed(err error) error {
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
