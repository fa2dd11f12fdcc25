package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auth-session-svc/src/clients"
	"auth-session-svc/src/internal/config"
	"auth-session-svc/src/internal/dependency"
	"auth-session-svc/src/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

type Server struct {
	cfg *config.Configuration
}

func New(cfg *config.Configuration) *Server {
	return &Server{cfg: cfg}
}

// Start connects infrastructure, wires dependencies and serves HTTP until
// a shutdown signal arrives.
func (s *Server) Start() error {
	cfg := s.cfg

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(recovery(), middleware.RequestLogger())

	redisClient, mongodb, rabbitMQ, err := s.connectInfra()
	if err != nil {
		return err
	}

	deps := dependency.NewDependencyManager(router, redisClient, mongodb, rabbitMQ, cfg)
	SetupRoutes(deps)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()

	if deps.MemoryStore != nil && cfg.Session.SweepMinutes > 0 {
		go deps.MemoryStore.RunJanitor(janitorCtx, time.Duration(cfg.Session.SweepMinutes)*time.Minute)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server listening on :%s", cfg.Server.Port)
		log.Infof("Demo login user: %s", cfg.Auth.Username)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Infof("Shutdown signal received: %s", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.closeInfra(redisClient, mongodb, rabbitMQ)
	log.Info("Server stopped cleanly")
	return nil
}

func (s *Server) connectInfra() (*clients.RedisClient, *clients.MongoDB, *clients.RabbitMQ, error) {
	cfg := s.cfg

	var redisClient *clients.RedisClient
	if cfg.Redis.Url != "" {
		client, err := clients.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		redisClient = client
	}

	var mongodb *clients.MongoDB
	if cfg.Database.Url != "" {
		db, err := clients.NewMongoDB(&cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		mongodb = db
	}

	var rabbitMQ *clients.RabbitMQ
	if cfg.Queue.RabbitMQ.Url != "" {
		mq, err := clients.NewRabbitMQ(&cfg.Queue)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := mq.SetupExchange(); err != nil {
			return nil, nil, nil, err
		}
		rabbitMQ = mq
	}

	return redisClient, mongodb, rabbitMQ, nil
}

func (s *Server) closeInfra(redisClient *clients.RedisClient, mongodb *clients.MongoDB, rabbitMQ *clients.RabbitMQ) {
	if rabbitMQ != nil {
		if err := rabbitMQ.Close(); err != nil {
			log.WithError(err).Error("Failed to close RabbitMQ")
		}
	}
	if mongodb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongodb.Close(ctx); err != nil {
			log.WithError(err).Error("Failed to close MongoDB")
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.WithError(err).Error("Failed to close Redis")
		}
	}
}

// recovery converts panics into the uniform 500 JSON envelope.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("panic", recovered).Error("Handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
		})
	})
}
