package mock

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/apiprobe/apiprobe/internal/models"
)

// Server is the local stub API the built-in suite runs against. Every
// exchange it serves is captured by the recorder and available through
// the admin endpoints.
type Server struct {
	engine   *gin.Engine
	store    *UserStore
	recorder *Recorder
	logger   *log.Logger
}

// NewServer creates the stub server with its routes configured
func NewServer(store *UserStore, recorder *Recorder, logger *log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:   gin.New(),
		store:    store,
		recorder: recorder,
		logger:   logger,
	}

	s.engine.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

// setupRoutes configures the stub and admin routes
func (s *Server) setupRoutes() {
	api := s.engine.Group("/api", s.recordExchange())
	{
		api.GET("/users/:id", s.getUser)
		api.GET("/users", s.listUsers)
		api.POST("/users", s.createUser)
		api.POST("/login", s.login)
		api.GET("/health", s.healthCheck)
	}

	admin := s.engine.Group("/_admin")
	{
		admin.GET("/requests", s.listExchanges)
		admin.DELETE("/requests", s.clearExchanges)
		admin.GET("/requests/stream", gin.WrapH(NewStreamHandler(s.recorder, s.logger)))
	}
}

// Handler returns the http.Handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// recordExchange captures each stub request/response pair into the recorder
func (s *Server) recordExchange() gin.HandlerFunc {
	return func(c *gin.Context) {
		var reqBody string
		if c.Request.Body != nil {
			data, err := io.ReadAll(c.Request.Body)
			if err == nil {
				reqBody = string(data)
				c.Request.Body = io.NopCloser(bytes.NewReader(data))
			}
		}

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		s.recorder.Record(&models.Exchange{
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			Query:       c.Request.URL.RawQuery,
			RequestBody: reqBody,
			StatusCode:  c.Writer.Status(),
			DurationMs:  float64(elapsed.Microseconds()) / 1000,
			ClientAddr:  c.ClientIP(),
		})
	}
}

// getUser returns a single user wrapped in a data envelope
func (s *Server) getUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := s.store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// listUsers returns one page of users
func (s *Server) listUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "6"))
	if err != nil || perPage < 1 {
		perPage = 6
	}

	users, total := s.store.List(page, perPage)
	totalPages := (total + perPage - 1) / perPage

	c.JSON(http.StatusOK, gin.H{
		"page":        page,
		"per_page":    perPage,
		"total":       total,
		"total_pages": totalPages,
		"data":        users,
	})
}

type createUserInput struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// createUser records a new user and echoes it back with id and createdAt
func (s *Server) createUser(c *gin.Context) {
	var input createUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created := s.store.Create(input.Name, input.Job)
	c.JSON(http.StatusCreated, created)
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login issues a token, or rejects requests missing credentials
func (s *Server) login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing email"})
		return
	}
	if input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": uuid.New().String()})
}

// healthCheck reports server liveness
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"users":  s.store.Count(),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// listExchanges returns recent captured exchanges, newest first
func (s *Server) listExchanges(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     s.recorder.Len(),
		"exchanges": s.recorder.Recent(limit),
	})
}

// clearExchanges drops all captured exchanges
func (s *Server) clearExchanges(c *gin.Context) {
	s.recorder.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "exchanges cleared"})
}
