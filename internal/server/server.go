package server

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/alkime/postauto/internal/catalog"
	"github.com/alkime/postauto/internal/config"
	"github.com/alkime/postauto/internal/content"
	"github.com/alkime/postauto/pkg/collections"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
)

// PostSource is the catalog and post content the server browses.
type PostSource interface {
	Records() []catalog.Record
	Find(filename string) (catalog.Record, bool)
	View(ctx context.Context, filename string) (body string, found bool)
}

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	logger     *slog.Logger
	router     *gin.Engine
	posts      PostSource
	archiveDir string
	markdown   goldmark.Markdown
}

// New creates a new Server instance. Batch archives under archiveDir are
// served at /downloads; an empty archiveDir disables downloads.
func New(cfg *config.Config, posts PostSource, archiveDir string, logger *slog.Logger) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn("Invalid trusted proxies, trusting none", "proxies", cfg.TrustedProxies, "error", err)
		_ = router.SetTrustedProxies(nil)
	}

	server := &Server{
		config:     cfg,
		logger:     logger,
		router:     router,
		posts:      posts,
		archiveDir: archiveDir,
		markdown:   goldmark.New(),
	}

	useSecurityHeaders(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port)
	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	if s.archiveDir != "" {
		s.router.Use(static.Serve("/downloads", static.LocalFile(s.archiveDir, false)))
	}

	s.router.GET("/health", s.handleHealth)
	s.router.GET("/", s.handleIndex)
	s.router.GET("/posts/:filename", s.handlePostPage)

	api := s.router.Group("/api")
	{
		api.GET("/posts", s.handleListPosts)
		api.GET("/posts/:filename", s.handleGetPost)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "postauto",
	})
}

// PostSummary is a catalog record without its content.
type PostSummary struct {
	Filename  string   `json:"filename"`
	Topic     string   `json:"topic"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
}

func summarize(rec catalog.Record) PostSummary {
	tags := content.SplitTags(rec.Tags)
	if tags == nil {
		tags = []string{}
	}

	return PostSummary{
		Filename:  rec.Filename,
		Topic:     rec.Topic,
		Category:  rec.Category,
		Tags:      tags,
		CreatedAt: rec.CreatedAt,
	}
}

func (s *Server) handleListPosts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"posts": collections.Apply(s.posts.Records(), summarize),
	})
}

// PostDetail is a summary plus the published markdown.
type PostDetail struct {
	PostSummary
	Content string `json:"content"`
	Found   bool   `json:"found"`
}

func (s *Server) lookup(c *gin.Context) (PostDetail, bool) {
	filename := c.Param("filename")

	rec, ok := s.posts.Find(filename)
	if !ok {
		rec = catalog.Record{Filename: filename}
	}

	body, found := s.posts.View(c.Request.Context(), filename)

	return PostDetail{PostSummary: summarize(rec), Content: body, Found: found}, found
}

func (s *Server) handleGetPost(c *gin.Context) {
	detail, found := s.lookup(c)
	if !found {
		c.JSON(http.StatusNotFound, detail)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (s *Server) handlePostPage(c *gin.Context) {
	detail, found := s.lookup(c)

	status := http.StatusOK
	if !found {
		status = http.StatusNotFound
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(content.StripFrontMatter(detail.Content)), &buf); err != nil {
		s.logger.Error("Failed to render post", "filename", detail.Filename, "error", err)
		c.String(http.StatusInternalServerError, "failed to render post")
		return
	}

	s.render(c, status, postTemplate, gin.H{
		"Post": detail,
		"Body": template.HTML(buf.String()), //nolint:gosec // goldmark escapes raw HTML by default
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	posts := collections.Apply(s.posts.Records(), summarize)
	s.render(c, http.StatusOK, indexTemplate, gin.H{"Posts": posts})
}

func (s *Server) render(c *gin.Context, status int, tmpl *template.Template, data gin.H) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("Failed to render page", "template", tmpl.Name(), "error", err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
