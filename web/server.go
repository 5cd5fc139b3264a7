// ABOUTME: HTTP JSON API server built on gin
// ABOUTME: Wires routes, middleware, and graceful shutdown around the outlab store
package web

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harperreed/outlab/files"
	"github.com/harperreed/outlab/importer"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	db       *sql.DB
	files    *files.Store
	importer *importer.Importer
	log      logrus.FieldLogger
	engine   *gin.Engine
}

func NewServer(database *sql.DB, store *files.Store, im *importer.Importer, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		db:       database,
		files:    store,
		importer: im,
		log:      logger,
		engine:   gin.New(),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(requestID())
	s.engine.Use(requestLogger(logger))
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})

	api := s.engine.Group("/api")
	{
		api.GET("/campaigns", s.listCampaigns)
		api.POST("/campaigns", s.createCampaign)
		api.GET("/campaigns/by-name/:name", s.getCampaignByName)
		api.GET("/campaigns/:id", s.getCampaign)
		api.DELETE("/campaigns/:id", s.deleteCampaign)
		api.GET("/campaigns/:id/metrics", s.campaignMetrics)
		api.GET("/campaigns/:id/overview", s.campaignOverview)
		api.GET("/campaigns/:id/cadence", s.getCadence)
		api.POST("/campaigns/:id/cadence", s.createCadence)
		api.GET("/campaigns/:id/documents", s.listDocuments)
		api.POST("/campaigns/:id/documents", s.uploadDocument)
		api.GET("/documents/:id/download", s.downloadDocument)

		api.GET("/cadences/:id/activities", s.listCadenceActivities)
		api.POST("/cadences/:id/activities", s.addCadenceActivity)
		api.GET("/cadences/:id/contacts", s.listContacts)
		api.POST("/cadences/:id/contacts", s.createContact)
		api.POST("/cadences/:id/contacts/import", s.importContacts)

		api.PUT("/contacts/:id/status", s.setContactStatus)
		api.POST("/contacts/:id/activities", s.logActivity)
		api.POST("/contacts/:id/convert", s.convertContact)
		api.GET("/activities", s.listActivities)
		api.GET("/opportunities", s.listOpportunities)

		api.GET("/accounts", s.listAccounts)
		api.POST("/accounts", s.createAccount)
		api.GET("/accounts/:id/signals", s.listSignals)
		api.POST("/accounts/:id/signals", s.addSignal)

		api.GET("/overview", s.overview)
		api.GET("/demo", s.demo)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("HTTP server stopped")
	return nil
}
