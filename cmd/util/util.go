package util

import (
	"fmt"
	"strings"

	"github.com/groupkv/gkv/rpc/common"
	"github.com/groupkv/gkv/rpc/serializer"
	"github.com/groupkv/gkv/rpc/transport"
	"github.com/groupkv/gkv/rpc/transport/tcp"
	"github.com/groupkv/gkv/rpc/transport/unix"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// helpWidth is the column at which flag help texts wrap.
const helpWidth = 50

// WrapString reflows a help text to helpWidth columns.
func WrapString(text string) string {
	var out strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		switch {
		case lineWidth == 0:
			// first word on the line
		case lineWidth+1+len(word) > helpWidth:
			out.WriteString("\n")
			lineWidth = 0
		default:
			out.WriteString(" ")
			lineWidth++
		}
		out.WriteString(word)
		lineWidth += len(word)
	}

	return out.String()
}

// SetupRPCClientFlags registers the connection flags every client command
// group shares. The flag names double as viper keys and (uppercased, with
// dashes replaced) as GKV_ environment variables.
func SetupRPCClientFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()

	f.Int("timeout", 10, WrapString("The timeout in seconds of the client"))
	f.String("transport-endpoints", "localhost:6380", WrapString("The address of the gkv server. Multiple endpoints can be specified as a comma-separated list; requests are balanced over them"))
	f.Int("transport-conn-per-endpoint", 1, WrapString("Simultaneous connections per endpoint"))
	f.Int("transport-retries", 3, WrapString("How many times to retry the request"))
	f.Int("transport-write-buffer", 512, WrapString("The size of the write buffer for the transport (in KB)"))
	f.Int("transport-read-buffer", 512, WrapString("The size of the read buffer for the transport (in KB)"))
	f.Bool("transport-tcp-nodelay", true, WrapString("Whether to enable TCP_NODELAY for the transport (only for tcp)"))
	f.Int("transport-tcp-keepalive", 0, WrapString("The keepalive interval for the transport (in seconds, only for tcp)"))
	f.Int("transport-tcp-linger", 0, WrapString("The linger time for the transport (in seconds, only for tcp)"))
}

// InitClientConfig loads .env files and binds the GKV_ environment prefix.
// Registered with cobra.OnInitialize by each client command group.
func InitClientConfig() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("gkv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// GetClientConfig assembles the client configuration from viper.
func GetClientConfig() *common.ClientConfig {
	return &common.ClientConfig{
		TimeoutSecond: viper.GetInt("timeout"),
		Transport: common.ClientTransportConf{
			Endpoints:              strings.Split(viper.GetString("transport-endpoints"), ","),
			ConnectionsPerEndpoint: viper.GetInt("transport-conn-per-endpoint"),
			RetryCount:             viper.GetInt("transport-retries"),
			SocketConf: common.SocketConf{
				WriteBufferSize: viper.GetInt("transport-write-buffer") * 1024,
				ReadBufferSize:  viper.GetInt("transport-read-buffer") * 1024,
			},
			TCPConf: common.TCPConf{
				TCPNoDelay:      viper.GetBool("transport-tcp-nodelay"),
				TCPKeepAliveSec: viper.GetInt("transport-tcp-keepalive"),
				TCPLingerSec:    viper.GetInt("transport-tcp-linger"),
			},
		},
	}
}

// GetSerializer resolves the serializer selected by the root flag.
func GetSerializer() (serializer.IRPCSerializer, error) {
	switch name := viper.GetString("serializer"); name {
	case "json":
		return serializer.NewJSONSerializer(), nil
	case "gob":
		return serializer.NewGOBSerializer(), nil
	case "binary":
		return serializer.NewBinarySerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s", name)
	}
}

// GetTransport resolves the client transport selected by the root flag.
func GetTransport() (transport.IRPCClientTransport, error) {
	switch name := viper.GetString("transport"); name {
	case "tcp":
		return tcp.NewTCPClientTransport(), nil
	case "unix":
		return unix.NewUnixClientTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", name)
	}
}

// ClientComponents binds cmd's flags to viper and resolves everything a
// client command group needs to connect: config, transport and serializer.
func ClientComponents(cmd *cobra.Command) (*common.ClientConfig, transport.IRPCClientTransport, serializer.IRPCSerializer, error) {
	if err := BindCommandFlags(cmd); err != nil {
		return nil, nil, nil, err
	}

	s, err := GetSerializer()
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := GetTransport()
	if err != nil {
		return nil, nil, nil, err
	}

	return GetClientConfig(), t, s, nil
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
