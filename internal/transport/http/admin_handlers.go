package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleOverview(c *gin.Context) {
	stats, err := s.stats.Overview(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.stats.Users(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleUserDetail(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	profile, _, err := s.stats.UserDetail(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) handleUserAttempts(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	_, attempts, err := s.stats.UserDetail(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}
