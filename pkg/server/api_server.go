package server

import (
	"fmt"

	"github.com/NeuralTrust/TakeALook/pkg/config"
	handlers "github.com/NeuralTrust/TakeALook/pkg/handlers/http"
	"github.com/NeuralTrust/TakeALook/pkg/middleware"
	"github.com/NeuralTrust/TakeALook/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	APIServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	APIServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewAPIServer(di APIServerDI) *APIServer {
	s := &APIServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
	s.setupHealthCheck()
	s.WithRouters(router.NewAPIRouter(&s.middlewareTransport, s.handlerTransport, di.Config.Server.DocsURL))
	return s
}

func (s *APIServer) Run() error {
	s.setupMetricsEndpoint()
	addr := fmt.Sprintf(":%d", s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting API server")
	return s.Router.Listen(addr)
}

func (s *APIServer) Shutdown() error {
	s.shutdownMetrics()
	return s.Router.Shutdown()
}
