package main

import (
	"time"

	"github.com/tonsuu/tonsuu/internal/ai"
	"github.com/tonsuu/tonsuu/internal/config"
	"github.com/tonsuu/tonsuu/internal/infrastructure"
)

type Server struct {
	infra   *infrastructure.Infrastructure
	sender  *ai.Gemini
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	sender, err := ai.NewGemini(infra.Lifecycle.Context(), &cfg.Gemini)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg, sender)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"model", cfg.Gemini.Model,
		"spec", infra.Spec.Version,
	)

	return &Server{
		infra:   infra,
		sender:  sender,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	s.infra.Lifecycle.OnShutdown(func() {
		<-s.infra.Lifecycle.Context().Done()
		if err := s.sender.Close(); err != nil {
			s.infra.Logger.Error("gemini close error", "error", err)
		}
	})

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
