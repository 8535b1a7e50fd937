package tcp

import (
	"fmt"
	"net"
	"time"

	"github.com/groupkv/gkv/rpc/common"
	"github.com/groupkv/gkv/rpc/transport"
	"github.com/groupkv/gkv/rpc/transport/base"
)

const (
	defaultBufferSize = 512 * 1024 // 512 KB
	defaultMaxWorkers = 16
)

// serverConnector implements the IServerConnector interface for TCP sockets
type serverConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IServerConnector)
// --------------------------------------------------------------------------

func (c *serverConnector) GetName() string {
	return "tcp"
}

func (c *serverConnector) Listen(config common.ServerConfig) (net.Listener, error) {
	listener, err := net.Listen("tcp", config.Transport.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create TCP socket: %v", err)
	}

	return listener, nil
}

// UpgradeConnection applies socket tuning from the server configuration to
// an accepted TCP connection.
func (c *serverConnector) UpgradeConnection(conn net.Conn, config common.ServerConfig) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil // Not a TCP connection, nothing to upgrade
	}

	return upgradeTCPConn(tcpConn, config.Transport.SocketConf, config.Transport.TCPConf)
}

// upgradeTCPConn applies the shared TCP tuning knobs to a connection.
func upgradeTCPConn(tcpConn *net.TCPConn, socketConf common.SocketConf, tcpConf common.TCPConf) error {
	if err := tcpConn.SetNoDelay(tcpConf.TCPNoDelay); err != nil {
		return err
	}

	if socketConf.WriteBufferSize > 0 {
		if err := tcpConn.SetWriteBuffer(socketConf.WriteBufferSize); err != nil {
			return err
		}
	}

	if socketConf.ReadBufferSize > 0 {
		if err := tcpConn.SetReadBuffer(socketConf.ReadBufferSize); err != nil {
			return err
		}
	}

	if tcpConf.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return err
		}
		if err := tcpConn.SetKeepAlivePeriod(time.Duration(tcpConf.TCPKeepAliveSec) * time.Second); err != nil {
			return err
		}
	}

	if tcpConf.TCPLingerSec >= 0 {
		if err := tcpConn.SetLinger(tcpConf.TCPLingerSec); err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Server Transport Factory Method
// --------------------------------------------------------------------------

// NewTCPDefaultServerTransport creates a new TCP server transport with default settings
func NewTCPDefaultServerTransport() transport.IRPCServerTransport {
	return NewTCPServerTransport(defaultBufferSize, defaultMaxWorkers)
}

// NewTCPServerTransport creates a new TCP server transport with the given
// read buffer size and per-connection worker limit
func NewTCPServerTransport(bufferSize, maxWorkersPerConn int) transport.IRPCServerTransport {
	return base.NewBaseServerTransport(&serverConnector{}, bufferSize, maxWorkersPerConn)
}
