// Package api exposes the marketplace over a JSON HTTP API (fiber). The API
// is a thin shell: request parsing, auth extraction, and error-to-status
// mapping; all behavior lives in the services.
package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stormarket/stormarket/internal/config"
	"github.com/stormarket/stormarket/internal/logging"
	"github.com/stormarket/stormarket/internal/services"
)

type Server struct {
	app    *fiber.App
	config *config.Config
	log    logging.Logger

	deals   *services.DealService
	wallet  *services.WalletService
	network *services.NetworkService
	shares  *services.ShareLinkService
	backup  *services.BackupService
}

func NewServer(cfg *config.Config, log logging.Logger,
	deals *services.DealService, wallet *services.WalletService,
	network *services.NetworkService, shares *services.ShareLinkService,
	backup *services.BackupService) *Server {

	s := &Server{
		app:     fiber.New(fiber.Config{DisableStartupMessage: true}),
		config:  cfg,
		log:     log,
		deals:   deals,
		wallet:  wallet,
		network: network,
		shares:  shares,
		backup:  backup,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.app.Group("/api/v1")

	// resolve is the only public route: the link ID is the capability
	v1.Post("/shares/:id/resolve", s.handleShareResolve)

	v1.Use(s.authRequired())

	v1.Post("/uploads", s.handleUploadPrepare)

	v1.Get("/deals", s.handleDealList)
	v1.Post("/deals", s.handleDealCreate)
	v1.Post("/deals/batch", s.handleDealCreateBatch)
	v1.Delete("/deals/:id", s.handleDealDelete)
	v1.Post("/deals/:id/retrieve", s.handleDealRetrieve)

	v1.Get("/retrievals", s.handleRetrievalList)

	v1.Get("/wallet", s.handleWalletGet)
	v1.Get("/providers", s.handleProviderList)
	v1.Get("/network/stats", s.handleNetworkStats)
	v1.Post("/network/refresh", s.handleNetworkRefresh)

	v1.Get("/shares", s.handleShareList)
	v1.Post("/shares", s.handleShareCreate)
	v1.Delete("/shares/:id", s.handleShareRevoke)

	v1.Get("/backup", s.handleBackupGet)
	v1.Put("/backup", s.handleBackupSave)
}

// Run blocks serving the API on addr.
func (s *Server) Run(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
