package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stateloan/lms-auth/pkg/config"
	"github.com/stateloan/lms-auth/pkg/server/middleware"
	"github.com/stateloan/lms-auth/pkg/server/store"
	"github.com/stateloan/lms-auth/pkg/token"
)

// Stores bundles the storage interfaces the endpoints depend on.
type Stores struct {
	Permissions store.PermissionsStore
	Roles       store.RolesStore
	Users       store.UsersStore
	Health      store.HealthStore
}

type Server struct {
	Router     *mux.Router
	DB         *gorm.DB
	Config     *config.Config
	Logger     *zap.Logger
	Stores     Stores
	Issuer     *token.Issuer
	Middleware *middleware.BearerAuthenticator
	srv        *http.Server
}

func NewServer(
	cfg *config.Config,
	db *gorm.DB,
	logger *zap.Logger,
	stores Stores,
	issuer *token.Issuer,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    cfg.Addr(),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:     router,
		DB:         db,
		Config:     cfg,
		Logger:     logger,
		Stores:     stores,
		Issuer:     issuer,
		Middleware: middleware.NewBearerAuthenticator(issuer),
		srv:        srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
