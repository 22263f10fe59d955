package http

import (
	"net/http"
	"strconv"

	"flagforge/internal/app"

	"github.com/gin-gonic/gin"
)

// handleListProblems serves the public catalog. Authenticated callers get
// the same redacted projection plus their own solved marks.
func (s *Server) handleListProblems(c *gin.Context) {
	ctx := c.Request.Context()
	if ident, ok := CurrentIdentity(c); ok {
		entries, err := s.catalog.ListFor(ctx, ident.UserID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
		return
	}
	summaries, err := s.catalog.List(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (s *Server) handleGetProblem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	summary, err := s.catalog.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleAdminGetProblem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	challenge, err := s.catalog.AdminGet(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, adminChallengeResponse(challenge))
}

func (s *Server) handleCreateProblem(c *gin.Context) {
	var in app.ChallengeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	ident, _ := CurrentIdentity(c)
	challenge, err := s.catalog.Create(c.Request.Context(), ident.UserID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, adminChallengeResponse(challenge))
}

func (s *Server) handleUpdateProblem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	var in app.ChallengeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	challenge, err := s.catalog.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, adminChallengeResponse(challenge))
}

func (s *Server) handleDeleteProblem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	if err := s.catalog.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "problem deleted"})
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
