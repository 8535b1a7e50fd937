package serve

import (
	"fmt"
	"strings"

	cmdUtil "github.com/groupkv/gkv/cmd/util"
	"github.com/groupkv/gkv/rpc/common"
	"github.com/groupkv/gkv/rpc/serializer"
	"github.com/groupkv/gkv/rpc/server"
	"github.com/groupkv/gkv/rpc/transport"
	"github.com/groupkv/gkv/rpc/transport/tcp"
	"github.com/groupkv/gkv/rpc/transport/unix"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the gkv server",
		Long:    `Start the gkv server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is GKV_<flag> (e.g. GKV_TIMEOUT=15)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:6380", cmdUtil.WrapString("The address on which the server will listen (host:port for tcp, a path like /tmp/gkv.sock for unix)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Timeout in seconds for one read or write on a connection"))

	key = "janitor-interval"
	ServeCmd.PersistentFlags().Duration(key, 0, cmdUtil.WrapString("Sweep interval of the expiration janitor (0 for the database default)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Optional address for the Prometheus metrics endpoint (e.g. 127.0.0.1:9100)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warning, error)"))

	key = "write-buffer"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The size of the socket write buffer (in KB, 0 for the OS default)"))

	key = "read-buffer"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The size of the socket read buffer (in KB, 0 for the OS default)"))

	key = "tcp-nodelay"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("Whether to enable TCP_NODELAY (only for tcp)"))

	key = "tcp-keepalive"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The keepalive interval (in seconds, only for tcp)"))

	key = "tcp-linger"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The linger time on close (in seconds, only for tcp)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Transport = common.ServerTransportConf{
		Endpoint: viper.GetString("endpoint"),
		SocketConf: common.SocketConf{
			WriteBufferSize: viper.GetInt("write-buffer") * 1024,
			ReadBufferSize:  viper.GetInt("read-buffer") * 1024,
		},
		TCPConf: common.TCPConf{
			TCPNoDelay:      viper.GetBool("tcp-nodelay"),
			TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
			TCPLingerSec:    viper.GetInt("tcp-linger"),
		},
	}
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.JanitorInterval = viper.GetDuration("janitor-interval")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	return nil
}

// run starts the gkv server
func run(_ *cobra.Command, _ []string) error {

	// parse the serializer
	var s serializer.IRPCSerializer
	switch viper.GetString("serializer") {
	case "json":
		s = serializer.NewJSONSerializer()
	case "gob":
		s = serializer.NewGOBSerializer()
	case "binary":
		s = serializer.NewBinarySerializer()
	default:
		return fmt.Errorf("invalid serializer %s", viper.GetString("serializer"))
	}

	// parse the transport
	var t transport.IRPCServerTransport
	switch viper.GetString("transport") {
	case "tcp":
		t = tcp.NewTCPDefaultServerTransport()
	case "unix":
		t = unix.NewUnixDefaultServerTransport()
	default:
		return fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}

	serv := server.NewRPCServer(
		*serveCmdConfig,
		t,
		s,
	)

	return serv.Serve()
}

// initConfig reads in serveCmdConfig file and ENV variables if set.
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("gkv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
