package preview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"videoeditor/video"
)

// Server streams local clips over HTTP so a browser or media player can
// preview them while they sit in the editor.
type Server struct {
	mu      sync.RWMutex
	clips   map[string]*video.Clip
	baseURL string

	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// ClipInfo is the listing entry for one published clip
type ClipInfo struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Size     int64   `json:"size"`
	SizeText string  `json:"size_text"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration,omitempty"`
}

// New constructs a preview server with its routes registered
func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		clips:  make(map[string]*video.Clip),
		router: gin.New(),
		logger: logger,
	}
	s.router.Use(gin.Recovery())
	s.registerClipRoutes()
	s.registerHealthRoutes()
	return s
}

func (s *Server) registerClipRoutes() {
	g := s.router.Group("/clips")
	g.GET("", s.handleListClips)
	g.GET("/:id", s.handleGetClip)
}

func (s *Server) registerHealthRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		s.mu.RLock()
		n := len(s.clips)
		s.mu.RUnlock()
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "clips": n})
	})
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr and serves in the background. It returns the base URL
// clients should use, which carries the real port when addr asks for port 0.
func (s *Server) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.http = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	base := "http://" + ln.Addr().String()

	s.mu.Lock()
	s.baseURL = base
	s.mu.Unlock()

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Preview server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("Preview server listening", zap.String("url", base))
	return base, nil
}

// Publish makes clip reachable and returns its preview URL
func (s *Server) Publish(clip *video.Clip) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clips[clip.ID] = clip
	return s.clipURL(clip.ID)
}

// Revoke stops serving the clip with the given id
func (s *Server) Revoke(id string) {
	s.mu.Lock()
	delete(s.clips, id)
	s.mu.Unlock()
}

// Shutdown stops the listener, if it was started
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) clipURL(id string) string {
	return s.baseURL + "/clips/" + url.PathEscape(id)
}

func (s *Server) handleListClips(c *gin.Context) {
	s.mu.RLock()
	infos := make([]ClipInfo, 0, len(s.clips))
	for _, clip := range s.clips {
		info := ClipInfo{
			ID:       clip.ID,
			Name:     clip.Name,
			Type:     clip.Type,
			Size:     clip.Size,
			SizeText: humanize.Bytes(uint64(clip.Size)),
			URL:      s.clipURL(clip.ID),
		}
		if clip.Media != nil {
			info.Duration = clip.Media.Duration.Seconds()
		}
		infos = append(infos, info)
	}
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"clips": infos, "count": len(infos)})
}

func (s *Server) handleGetClip(c *gin.Context) {
	id := c.Param("id")

	s.mu.RLock()
	clip, ok := s.clips[id]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "clip not found"})
		return
	}

	if clip.Type != "" {
		c.Header("Content-Type", clip.Type)
	}
	c.File(clip.Path)
}
