package http

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkshare/parkshare-web/services/web/catalog"
	"github.com/parkshare/parkshare-web/services/web/config"
	"github.com/parkshare/parkshare-web/services/web/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Server bundles router and dependencies for the web front-end.
type Server struct {
	cfg      config.Config
	catalog  *catalog.Store
	sessions *view.Sessions
	engine   *gin.Engine
}

// New constructs a server with routes and middleware. Request logs go to
// logOut; nil means gin's default writer.
func New(cfg config.Config, store *catalog.Store, sessions *view.Sessions, logOut io.Writer) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	if logOut != nil {
		engine.Use(gin.LoggerWithWriter(logOut))
	} else {
		engine.Use(gin.Logger())
	}
	engine.Use(corsMiddleware())
	engine.SetHTMLTemplate(parseTemplates())

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	engine.StaticFS("/static", http.FS(static))

	server := &Server{cfg: cfg, catalog: store, sessions: sessions, engine: engine}
	server.registerRoutes()
	server.registerV1Routes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	pages := s.engine.Group("/", s.sessionMiddleware())
	{
		pages.GET("/", s.handlePage)
		pages.GET("/spots/:id", s.handleSpotPage)
		pages.POST("/search", s.handleSearchForm)
		pages.POST("/category", s.handleCategoryForm)
		pages.POST("/navigate/:view", s.handleNavigateForm)
		pages.POST("/chat", s.handleChatForm)
		pages.POST("/chat/open", s.handleChatOpen)
		pages.POST("/chat/close", s.handleChatClose)
	}
}

func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		"price":       view.FormatPrice,
		"perHour":     view.PerHourLabel,
		"rating":      view.FormatRating,
		"featureIcon": view.FeatureIcon,
		"searchTitle": view.SearchHeading,
		"placeholder": func() string { return view.ImagePlaceholder },
		"isUser":      isUserMessage,
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
