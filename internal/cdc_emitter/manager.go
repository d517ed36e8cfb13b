// Package cdc_emitter publishes a change feed: every successful backend mutation is written as
// one JSON line to each connected TCP client.
package cdc_emitter

import (
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"io"
	"net"
	"sync"
)

const defaultBufferSize = 10000

type Config struct {
	// Port 0 picks a free port.
	Port    int
	Address string
	// BufferSize is the number of events held for delivery. Defaults to 10000.
	BufferSize int
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Port < 0 || c.Port > 65535 {
		errGrp = append(errGrp, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.Address == "" {
		errGrp = append(errGrp, fmt.Errorf("invalid address: %s", c.Address))
	}
	if c.BufferSize < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid buffer size: %d", c.BufferSize))
	}
	return errors.Join(errGrp...)
}

type Manager struct {
	listener net.Listener

	emitChan   chan *Event
	procCtx    context.Context
	procCancel context.CancelFunc
	wg         sync.WaitGroup

	clients    map[net.Conn]bool
	clientsMux sync.Mutex
}

func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	addrString := fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
	listener, err := net.Listen("tcp", addrString)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addrString, err)
	}

	size := cfg.BufferSize
	if size == 0 {
		size = defaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		listener:   listener,
		emitChan:   make(chan *Event, size),
		procCtx:    ctx,
		procCancel: cancel,

		clients:    make(map[net.Conn]bool),
		clientsMux: sync.Mutex{},
	}, nil
}

// Addr is the address clients connect to.
func (m *Manager) Addr() net.Addr {
	return m.listener.Addr()
}

func (m *Manager) Start() error {
	log.Info().Msgf("CDC feed listening at %s", m.listener.Addr())

	m.wg.Add(2)
	go func() {
		defer m.wg.Done()
		for {
			select {
			case <-m.procCtx.Done():
				return
			case e := <-m.emitChan:
				m.raiseCDCEvent(e)
			}
		}
	}()

	go func() {
		defer m.wg.Done()
		for {
			conn, err := m.listener.Accept()
			if err != nil {
				if m.procCtx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return
				}
				log.Warn().Err(err).Msg("Failed to accept CDC connection")
				continue
			}

			go m.handle(conn)
		}
	}()

	return nil
}

// Stop closes the listener and every connected client. Undelivered events are dropped.
func (m *Manager) Stop() error {
	if m.procCancel != nil {
		m.procCancel()
	}

	var err error
	if m.listener != nil {
		if closeErr := m.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
			err = fmt.Errorf("failed to close listener: %w", closeErr)
		}
	}
	m.wg.Wait()

	m.clientsMux.Lock()
	for conn := range m.clients {
		_ = conn.Close()
		delete(m.clients, conn)
	}
	m.clientsMux.Unlock()

	return err
}

func (m *Manager) Name() string {
	return "CDC Emitter"
}

func (m *Manager) handle(conn net.Conn) {
	defer func() {
		m.clientsMux.Lock()
		delete(m.clients, conn)
		m.clientsMux.Unlock()
		_ = conn.Close()
	}()

	m.clientsMux.Lock()
	m.clients[conn] = true
	m.clientsMux.Unlock()

	log.Debug().Msgf("CDC client connected: %s", conn.RemoteAddr())

	// clients never send; reading only detects disconnection
	buffer := make([]byte, 4096)
	for {
		if _, err := conn.Read(buffer); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug().Msgf("CDC client disconnected: %s", conn.RemoteAddr())
			} else {
				log.Debug().Err(err).Msgf("CDC client read failed: %s", conn.RemoteAddr())
			}
			return
		}
	}
}
