package dependency

import (
	"time"

	"auth-session-svc/src/clients"
	"auth-session-svc/src/internal/auth"
	"auth-session-svc/src/internal/config"
	"auth-session-svc/src/internal/credentials"
	"auth-session-svc/src/internal/middleware"
	"auth-session-svc/src/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Manager struct {
	Router            *gin.Engine
	Config            *config.Configuration
	Redis             *clients.RedisClient
	Mongodb           *clients.MongoDB
	RabbitMQ          *clients.RabbitMQ
	SessionStore      session.Store
	MemoryStore       *session.MemoryStore
	Verifier          credentials.Verifier
	Publisher         clients.ActivityPublisher
	AuthHandler       auth.Handler
	SessionMiddleware *middleware.SessionMiddleware
}

func NewDependencyManager(router *gin.Engine,
	redisClient *clients.RedisClient,
	mongodb *clients.MongoDB,
	rabbitMQ *clients.RabbitMQ,
	cfg *config.Configuration) *Manager {

	ttl := time.Duration(cfg.Session.TTLHours) * time.Hour

	var store session.Store
	var memoryStore *session.MemoryStore
	if cfg.Session.Store == "redis" && redisClient != nil {
		store = session.NewRedisStore(redisClient.Client, cfg.Session.RedisKeyPrefix, ttl)
		logrus.Info("Using redis session store")
	} else {
		memoryStore = session.NewMemoryStore(ttl)
		store = memoryStore
		logrus.Info("Using in-memory session store")
	}

	var verifier credentials.Verifier
	if mongodb != nil {
		verifier = credentials.NewMongoVerifier(mongodb, cfg.Database.UserCollection)
		logrus.Info("Using mongodb credential verifier")
	} else {
		verifier = credentials.NewStaticVerifier(cfg.Auth.Username, cfg.Auth.Password)
		logrus.Info("Using static credential verifier")
	}

	var publisher clients.ActivityPublisher
	if rabbitMQ != nil {
		publisher = clients.NewActivityPublisher(cfg, rabbitMQ.Channel)
	} else {
		publisher = clients.NoopActivityPublisher{}
	}

	authHandler := auth.NewHandler(cfg, store, verifier, publisher)
	sessionMiddleware := middleware.NewSessionMiddleware(store, cfg.Session.CookieName)

	return &Manager{
		Router:            router,
		Config:            cfg,
		Redis:             redisClient,
		Mongodb:           mongodb,
		RabbitMQ:          rabbitMQ,
		SessionStore:      store,
		MemoryStore:       memoryStore,
		Verifier:          verifier,
		Publisher:         publisher,
		AuthHandler:       authHandler,
		SessionMiddleware: sessionMiddleware,
	}
}
