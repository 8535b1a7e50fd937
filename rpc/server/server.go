package server

import (
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/groupkv/gkv/lib/db"
	"github.com/groupkv/gkv/lib/store"
	"github.com/groupkv/gkv/rpc/common"
	"github.com/groupkv/gkv/rpc/serializer"
	"github.com/groupkv/gkv/rpc/transport"
)

var Logger = common.GetLogger("rpc")

// NewRPCServer creates a new RPC server
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		config,
//		tcp.NewTCPDefaultServerTransport(),
//		serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) rpcServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	return rpcServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		adapter:    NewStoreServerAdapter(),
	}
}

type rpcServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	store      *store.Store
	adapter    IRPCServerAdapter
}

func (s *rpcServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(req []byte) []byte {
		var msg common.Message
		var respMsg common.Message

		// Decode the request
		if err := s.serializer.Deserialize(req, &msg); err != nil {
			respMsg = common.Message{
				MsgType: common.MsgTError,
				Err:     fmt.Sprintf("failed to deserialize request: %s", err),
			}
		} else {
			// Let the adapter handle the request
			respMsg = *s.adapter.Handle(&msg, s.store)
		}

		// Return result
		val, err := s.serializer.Serialize(respMsg)
		if err != nil {
			respMsg = common.Message{
				MsgType: common.MsgTError,
				Err:     fmt.Sprintf("failed to serialize response: %s", err),
			}
			val, _ = s.serializer.Serialize(respMsg)
		}
		return val
	})
}

// registerMetrics exposes the database state as gauges. The command
// counters themselves live in the store package.
func (s *rpcServer) registerMetrics() {
	database := s.store.DB()
	metrics.NewGauge("gkv_db_keys", func() float64 {
		return float64(database.Len())
	})
	metrics.NewGauge("gkv_db_dirty_total", func() float64 {
		return float64(database.Dirty())
	})
	metrics.NewGauge("gkv_groups", func() float64 {
		return float64(s.store.Groups().Len())
	})
	metrics.NewGauge("gkv_group_keys", func() float64 {
		return float64(s.store.Refs().Len())
	})
}

// serveMetrics starts the optional Prometheus exposition endpoint.
func (s *rpcServer) serveMetrics() {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})

	srv := &http.Server{
		Addr:              s.config.MetricsEndpoint,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		Logger.Infof("serving metrics on http://%s/metrics", s.config.MetricsEndpoint)
		if err := srv.ListenAndServe(); err != nil {
			Logger.Errorf("metrics endpoint stopped: %v", err)
		}
	}()
}

func (s *rpcServer) init() error {

	// Init logger
	if err := common.InitLoggers(s.config); err != nil {
		return err
	}

	// Create the database plus its group cache
	s.store = store.New(&store.Options{
		DB:     db.New(&db.Options{JanitorInterval: s.config.JanitorInterval}),
		Logger: common.GetLogger("gcache"),
	})
	Logger.Infof("created store")

	// Observability
	s.registerMetrics()
	if s.config.MetricsEndpoint != "" {
		s.serveMetrics()
	}

	Logger.Infof("gkv setup completed successfully")

	// Configure the transport layer
	s.registerTransportHandler()

	return nil
}

// Serve starts the RPC server
// This function will also initialize the server and start the transport layer
func (s *rpcServer) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}
