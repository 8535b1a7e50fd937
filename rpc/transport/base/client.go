package base

import (
	"fmt"
	"math/rand"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/groupkv/gkv/rpc/common"
	"github.com/groupkv/gkv/rpc/transport"
)

// --------------------------------------------------------------------------
// Connector interface
// --------------------------------------------------------------------------

// IClientConnector is the medium-specific half of a client transport. The
// base transport owns framing, multiplexing and retries; the connector only
// knows how to produce and tune a net.Conn.
type IClientConnector interface {
	// Connect dials a single connection to the given endpoint
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies socket settings to a fresh connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// --------------------------------------------------------------------------
// Connection state
// --------------------------------------------------------------------------

// response is what a reader hands back to a waiting Send call.
type response struct {
	payload []byte
	err     error
}

// clientConnection is one dialed connection plus the bookkeeping for the
// requests currently in flight on it. Writes are serialized by connMu; the
// read side runs in a single goroutine per connection.
type clientConnection struct {
	conn     net.Conn
	endpoint string
	stopCh   chan struct{}
	pending  *xsync.MapOf[uint64, chan response]
	connMu   sync.Mutex
	parent   *clientTransport
}

// clientTransport multiplexes requests over a pool of connections, spread
// round robin. Request ids are globally unique across the pool so a reader
// can never deliver a frame to the wrong waiter.
type clientTransport struct {
	connector     IClientConnector
	config        common.ClientConfig
	connections   []*clientConnection
	connectionsMu sync.RWMutex
	nextConnIndex uint64
	nextRequestID uint64
}

// NewBaseClientTransport wraps a connector into a full client transport.
func NewBaseClientTransport(connector IClientConnector) transport.IRPCClientTransport {
	return &clientTransport{
		connector:     connector,
		nextRequestID: 1,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if len(config.Transport.Endpoints) == 0 {
		return fmt.Errorf("no endpoints provided")
	}

	t.config = config
	t.closeConnections()

	perEndpoint := config.Transport.ConnectionsPerEndpoint
	if perEndpoint < 1 {
		perEndpoint = 1
	}

	want := len(config.Transport.Endpoints) * perEndpoint
	t.connections = make([]*clientConnection, 0, want)

	for _, endpoint := range config.Transport.Endpoints {
		for i := 0; i < perEndpoint; i++ {
			c := &clientConnection{
				endpoint: endpoint,
				stopCh:   make(chan struct{}),
				pending:  xsync.NewMapOf[uint64, chan response](),
				parent:   t,
			}

			if err := c.redial(); err != nil {
				Logger.Warningf("Failed to connect to %s (connection %d/%d): %v", endpoint, i+1, perEndpoint, err)
				continue
			}

			t.connectionsMu.Lock()
			t.connections = append(t.connections, c)
			t.connectionsMu.Unlock()

			go c.readLoop()
		}
	}

	if len(t.connections) == 0 {
		return fmt.Errorf("failed to connect to any endpoint")
	}

	Logger.Infof("Connected %d/%d connections to %d endpoints using %s transport",
		len(t.connections), want, len(config.Transport.Endpoints), t.connector.GetName())

	return nil
}

func (t *clientTransport) Send(req []byte) ([]byte, error) {
	requestID := atomic.AddUint64(&t.nextRequestID, 1)

	attempts := t.config.Transport.RetryCount
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	backoff := 50 * time.Millisecond

	for i := 0; i < attempts; i++ {
		c := t.getNextConnection()
		if c == nil {
			return nil, fmt.Errorf("no active connections available")
		}

		payload, err := t.roundTrip(c, requestID, req)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		Logger.Debugf("Request attempt %d/%d failed: %v", i+1, attempts, err)

		// back off before the next attempt, doubling with +-10% jitter
		if i < attempts-1 {
			jitter := 0.9 + 0.2*rand.Float64()
			time.Sleep(time.Duration(float64(backoff) * jitter))
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("failed to send request after %d attempts: %v", attempts, lastErr)
}

func (t *clientTransport) Close() error {
	t.closeConnections()
	return nil
}

// --------------------------------------------------------------------------
// Request lifecycle
// --------------------------------------------------------------------------

// roundTrip writes one frame on c and waits for the matching response.
func (t *clientTransport) roundTrip(c *clientConnection, requestID uint64, req []byte) ([]byte, error) {
	if c.conn == nil {
		return nil, fmt.Errorf("connection is closed")
	}

	// register the waiter before the frame can possibly be answered
	respCh := make(chan response, 1)
	c.pending.Store(requestID, respCh)
	defer c.pending.Delete(requestID)

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second
	if timeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(timeout))
	}

	// the lock covers only the write; responses arrive on the read loop
	c.connMu.Lock()
	err := writeFrame(c.conn, requestID, req)
	c.connMu.Unlock()
	if err != nil {
		return nil, err
	}

	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timeoutCh = time.After(timeout)
	}

	select {
	case resp := <-respCh:
		return resp.payload, resp.err
	case <-timeoutCh:
		return nil, fmt.Errorf("request timed out")
	}
}

// getNextConnection picks the next pool member round robin.
func (t *clientTransport) getNextConnection() *clientConnection {
	t.connectionsMu.RLock()
	defer t.connectionsMu.RUnlock()

	switch len(t.connections) {
	case 0:
		return nil
	case 1:
		return t.connections[0]
	}
	index := atomic.AddUint64(&t.nextConnIndex, 1) % uint64(len(t.connections))
	return t.connections[index]
}

func (t *clientTransport) closeConnections() {
	t.connectionsMu.Lock()
	defer t.connectionsMu.Unlock()

	for _, c := range t.connections {
		close(c.stopCh)
		if c.conn != nil {
			c.conn.Close()
		}
	}
	t.connections = nil
}

// --------------------------------------------------------------------------
// Per-connection read side
// --------------------------------------------------------------------------

// readLoop dispatches incoming frames to their waiters by request id. A
// read error without a matching waiter means the stream itself is broken
// and triggers a redial.
func (c *clientConnection) readLoop() {
	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		if timeout := time.Duration(c.parent.config.TimeoutSecond) * time.Second; timeout > 0 {
			c.conn.SetReadDeadline(time.Now().Add(timeout))
		}

		requestID, payload, err := readFrame(c.conn, nil)

		waiter, found := c.pending.Load(requestID)
		switch {
		case found && err != nil:
			waiter <- response{err: fmt.Errorf("error reading response: %v", err)}
		case found:
			waiter <- response{payload: payload}
		case err != nil:
			Logger.Errorf("Read error on connection to %s: %v", c.endpoint, err)
			if err := c.redial(); err != nil {
				Logger.Errorf("Failed to reconnect to %s: %v", c.endpoint, err)
				return
			}
		default:
			// a frame for a waiter that already timed out and deregistered
			Logger.Warningf("Received response for unknown request ID %d", requestID)
		}
	}
}

// redial establishes or restores the connection to the endpoint.
func (c *clientConnection) redial() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	conn, err := c.parent.connector.Connect(c.endpoint)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %v", c.endpoint, err)
	}
	if err := c.parent.connector.UpgradeConnection(conn, c.parent.config); err != nil {
		conn.Close()
		return fmt.Errorf("failed to upgrade connection to %s: %v", c.endpoint, err)
	}

	c.conn = conn
	return nil
}
