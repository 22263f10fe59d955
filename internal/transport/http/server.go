// Package http is the REST and websocket surface over the application
// services. Handlers translate wire shapes and map domain errors to HTTP
// statuses; all decision logic lives in internal/app.
package http

import (
	"time"

	"flagforge/internal/app"
	"flagforge/internal/token"

	"github.com/gin-gonic/gin"
)

// Server bundles the application services behind a gin engine.
type Server struct {
	accounts    *app.AccountService
	catalog     *app.CatalogService
	submissions *app.SubmissionService
	stats       *app.StatsService
	feed        *app.SolveFeed
	tokens      *token.Manager
	cookieName  string
}

func NewServer(
	accounts *app.AccountService,
	catalog *app.CatalogService,
	submissions *app.SubmissionService,
	stats *app.StatsService,
	feed *app.SolveFeed,
	tokens *token.Manager,
	cookieName string,
) *Server {
	return &Server{
		accounts:    accounts,
		catalog:     catalog,
		submissions: submissions,
		stats:       stats,
		feed:        feed,
		tokens:      tokens,
		cookieName:  cookieName,
	}
}

// Routes builds the full route table. Route classes follow the access gate:
// public, authenticated (RequireUser) and admin (RequireAdmin).
func (s *Server) Routes() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.String(200, "ok")
	})

	r.Use(Authenticate(s.tokens, s.cookieName))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.handleRegister)
			auth.POST("/login", s.handleLogin)
			auth.POST("/federated", s.handleFederatedLogin)
			auth.POST("/logout", s.handleLogout)
			auth.GET("/me", RequireUser(), s.handleMe)
		}

		api.GET("/problems", s.handleListProblems)
		api.GET("/problems/:id", s.handleGetProblem)
		api.GET("/leaderboard", s.handleLeaderboard)

		authed := api.Group("", RequireUser())
		{
			authed.POST("/attempts/:problemId", s.handleSubmit)
			authed.GET("/attempts/:problemId", s.handleMyAttempts)
			authed.GET("/solved", s.handleSolvedSet)
		}

		admin := api.Group("", RequireAdmin())
		{
			admin.POST("/problems", s.handleCreateProblem)
			admin.PUT("/problems/:id", s.handleUpdateProblem)
			admin.DELETE("/problems/:id", s.handleDeleteProblem)
			admin.GET("/admin/problems/:id", s.handleAdminGetProblem)
			admin.GET("/admin/stats/overview", s.handleOverview)
			admin.GET("/admin/users", s.handleListUsers)
			admin.GET("/admin/users/:id", s.handleUserDetail)
			admin.GET("/admin/users/:id/attempts", s.handleUserAttempts)
		}
	}

	r.GET("/ws/feed", s.handleFeed)

	return r
}

func (s *Server) setSessionCookie(c *gin.Context, raw string) {
	c.SetCookie(s.cookieName, raw, int(s.tokens.TTL()/time.Second), "/", "", false, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetCookie(s.cookieName, "", -1, "/", "", false, true)
}
