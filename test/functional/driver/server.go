package driver

import (
	"context"
	"net/http/httptest"

	"firmgen-server/cmd/api/wire"
	"firmgen-server/internal/infra/async"
	"firmgen-server/internal/infra/httpserver"
)

// InProcessServer runs the API on an httptest listener with the configured
// stores, so the suite needs no running deployment.
type InProcessServer struct {
	server *httptest.Server
	broker *async.LocalBroker
	stop   func()
}

func StartInProcessServer() (*InProcessServer, error) {
	broker := async.NewLocalBroker()
	app, err := wire.InitializeApplication(broker)
	if err != nil {
		return nil, err
	}

	handler := httpserver.NewServer(httpserver.ServerConfig{}, app.GenerationController, app.LiveFeedController).Handler()
	return &InProcessServer{
		server: httptest.NewServer(handler),
		broker: broker,
		stop:   async.Start(context.Background(), app.LiveFeedController, app.BuildFeedWorker),
	}, nil
}

func (s *InProcessServer) URL() string {
	return s.server.URL
}

func (s *InProcessServer) Close() {
	s.stop()
	s.server.Close()
	s.broker.Stop()
}
