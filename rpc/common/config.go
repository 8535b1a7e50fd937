package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Socket tuning
// --------------------------------------------------------------------------

// SocketConf holds socket buffer settings shared by all stream transports.
type SocketConf struct {
	// WriteBufferSize is the socket write buffer size in bytes (0 = OS default)
	WriteBufferSize int
	// ReadBufferSize is the socket read buffer size in bytes (0 = OS default)
	ReadBufferSize int
}

// TCPConf holds TCP-specific settings (ignored by other transports).
type TCPConf struct {
	// TCPNoDelay disables Nagle's algorithm when true
	TCPNoDelay bool
	// TCPKeepAliveSec enables keep-alive with the given period (0 = off)
	TCPKeepAliveSec int
	// TCPLingerSec sets the linger time on close (negative = OS default)
	TCPLingerSec int
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerTransportConf configures the listening side of a transport.
type ServerTransportConf struct {
	// Endpoint is the listen address (host:port for tcp, a path for unix)
	Endpoint string

	SocketConf
	TCPConf
}

// ServerConfig holds all configuration parameters of the RPC server.
type ServerConfig struct {
	Transport ServerTransportConf

	// TimeoutSecond bounds one read or write on a connection
	TimeoutSecond int64

	// JanitorInterval is the sweep interval of the expiration janitor
	// (0 = database default)
	JanitorInterval time.Duration

	// MetricsEndpoint, when set, serves Prometheus metrics over HTTP
	// on this address (e.g. "127.0.0.1:9100")
	MetricsEndpoint string

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("RPC Server")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	addSection("Database")
	if c.JanitorInterval > 0 {
		addField("Janitor Interval", c.JanitorInterval.String())
	} else {
		addField("Janitor Interval", "default")
	}

	addSection("Observability")
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	} else {
		addField("Metrics Endpoint", "disabled")
	}
	addField("Log Level", c.LogLevel)

	addSection("Socket Tuning")
	addField("TCP NoDelay", strconv.FormatBool(c.Transport.TCPNoDelay))
	addField("TCP KeepAlive", fmt.Sprintf("%d sec", c.Transport.TCPKeepAliveSec))
	addField("Write Buffer", fmt.Sprintf("%d bytes", c.Transport.WriteBufferSize))
	addField("Read Buffer", fmt.Sprintf("%d bytes", c.Transport.ReadBufferSize))

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientTransportConf configures the connecting side of a transport.
type ClientTransportConf struct {
	// Endpoints lists the server addresses; requests are balanced over them
	Endpoints []string
	// ConnectionsPerEndpoint is the number of parallel connections per endpoint
	ConnectionsPerEndpoint int
	// RetryCount is how often a failed request is retried
	RetryCount int

	SocketConf
	TCPConf
}

// ClientConfig holds all configuration parameters of an RPC client.
type ClientConfig struct {
	Transport ClientTransportConf

	// TimeoutSecond bounds one request round trip
	TimeoutSecond int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.Transport.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(int(math.Max(1, float64(c.Transport.ConnectionsPerEndpoint)))))

	addSection("Endpoints")
	for i, endpoint := range c.Transport.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
