package http

import (
	"net/http"

	"flagforge/internal/domain"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	user, err := s.accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	raw, err := s.tokens.Issue(user)
	if err != nil {
		fail(c, err)
		return
	}
	s.setSessionCookie(c, raw)
	c.JSON(http.StatusCreated, user.Profile())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	user, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	raw, err := s.tokens.Issue(user)
	if err != nil {
		fail(c, err)
		return
	}
	s.setSessionCookie(c, raw)
	c.JSON(http.StatusOK, user.Profile())
}

type federatedRequest struct {
	Provider  string `json:"provider"`
	Assertion string `json:"assertion"`
}

func (s *Server) handleFederatedLogin(c *gin.Context) {
	var req federatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	user, err := s.accounts.FederatedLogin(c.Request.Context(), domain.AuthProvider(req.Provider), req.Assertion)
	if err != nil {
		fail(c, err)
		return
	}
	raw, err := s.tokens.Issue(user)
	if err != nil {
		fail(c, err)
		return
	}
	s.setSessionCookie(c, raw)
	c.JSON(http.StatusOK, user.Profile())
}

func (s *Server) handleLogout(c *gin.Context) {
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *Server) handleMe(c *gin.Context) {
	ident, _ := CurrentIdentity(c)
	user, err := s.accounts.Get(c.Request.Context(), ident.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}
