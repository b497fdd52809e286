// main.go
package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/board"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/generation"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/internal/platform"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/processing"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/session"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/worker"
)

type Server struct {
	Config   platform.Config
	Sessions *session.Manager
	Router   *gin.Engine
	cron     *cron.Cron
}

func NewServer() (*Server, error) {
	cfg := platform.LoadConfig()

	images := generation.NewOpenAIImageClient(cfg.OpenAIKey)
	speech := generation.NewOpenAISpeechClient(cfg.OpenAIKey)
	music := generation.NewStubMusicClient()

	binder := &processing.Binder{
		Images:           images,
		Speech:           speech,
		Music:            music,
		Enricher:         processing.NewPromptEnricher(cfg.OpenAIKey, cfg.PromptEnrichment),
		ImageConcurrency: cfg.ImageConcurrency,
	}

	sessions := session.NewManager()
	processor := worker.NewProcessor(binder, images)

	router := gin.Default()

	// Add CORS middleware for your frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", os.Getenv("FRONTEND_URL"))
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With, X-Session-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Session-ID, Content-Disposition")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	server := &Server{
		Config:   cfg,
		Sessions: sessions,
		Router:   router,
		cron:     cron.New(),
	}

	server.setupRoutes(board.NewHandler(sessions, processor))
	server.scheduleEviction()

	return server, nil
}

func (s *Server) setupRoutes(handler *board.Handler) {
	// Health check (no session required)
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":   "healthy",
			"sessions": s.Sessions.Len(),
		})
	})

	s.Router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Storyboard Studio API v1"})
	})

	s.Router.GET("/voices", handler.Voices)

	// Everything under /storyboard is scoped to the caller's session.
	storyboard := s.Router.Group("/storyboard")
	storyboard.Use(handler.SessionMiddleware())
	{
		storyboard.POST("/generate", handler.Generate)
		storyboard.GET("/status", handler.Status)
		storyboard.GET("/timeline", handler.GetTimeline)
		storyboard.GET("/frame", handler.Frame)
		storyboard.GET("/audio", handler.GetAudio)
		storyboard.GET("/export", handler.Export)

		clips := storyboard.Group("/clips")
		{
			clips.GET("/:id/image", handler.GetClipImage)
			clips.POST("/:id/select", handler.SelectClip)
			clips.PATCH("/:id/duration", handler.SetClipDuration)
			clips.POST("/:id/swap", handler.SwapClip)
		}
		storyboard.POST("/deselect", handler.Deselect)
	}
}

// scheduleEviction drops idle sessions on a timer so abandoned tabs do
// not hold image and audio bytes forever.
func (s *Server) scheduleEviction() {
	ttl := s.Config.SessionTTL
	_, err := s.cron.AddFunc("@every 10m", func() {
		s.Sessions.EvictIdle(ttl)
	})
	if err != nil {
		log.Printf("Error scheduling session eviction: %v", err)
	}
}

func (s *Server) Run() error {
	s.cron.Start()
	defer s.cron.Stop()

	log.Printf("Server starting on port %s", s.Config.Port)
	return s.Router.Run(":" + s.Config.Port)
}

func main() {
	server, err := NewServer()
	if err != nil {
		log.Fatal("Failed to create server:", err)
	}

	if err := server.Run(); err != nil {
		log.Fatal("Failed to run server:", err)
	}
}
