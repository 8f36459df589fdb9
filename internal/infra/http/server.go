// Package http exposes the verification pipeline over a gin REST API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/config"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/infra/db"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/usecase"
)

// ImageDecoder turns uploaded bytes into a raster handle. Injectable so
// handler tests run without the OpenCV runtime.
type ImageDecoder func(data []byte) (domain.Image, error)

type Server struct {
	cfg   config.Config
	store *db.Store
	r     *gin.Engine

	verifyUC *usecase.VerifyCertificate
	fields   usecase.FieldExtractor
	qr       *usecase.QrVerifier
	cache    usecase.VerificationCache
	audit    usecase.AuditEventRepository
	decode   ImageDecoder
}

type ServerDeps struct {
	Verify *usecase.VerifyCertificate
	Fields usecase.FieldExtractor
	Qr     *usecase.QrVerifier
	Cache  usecase.VerificationCache
	Audit  usecase.AuditEventRepository
	Decode ImageDecoder
}

func NewServerWithDeps(cfg config.Config, store *db.Store, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		store:    store,
		r:        r,
		verifyUC: deps.Verify,
		fields:   deps.Fields,
		qr:       deps.Qr,
		cache:    deps.Cache,
		audit:    deps.Audit,
		decode:   deps.Decode,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/verify-certificate", s.handleVerifyCertificate)
		api.POST("/scan-qr", s.handleScanQr)
		api.GET("/audit-events", s.handleListAuditEvents)
	}

	s.r.NoRoute(func(c *gin.Context) {
		writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	dbMode := "no-db"
	if s.store != nil && s.store.DB != nil {
		dbMode = "db"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": dbMode})
}

func (s *Server) Run() error {
	return s.r.Run(s.cfg.HTTPAddr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.r
}
