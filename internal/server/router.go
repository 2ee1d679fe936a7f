package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omnibrief/omnibrief/internal/auth"
)

// Router builds the gin engine with all API routes behind authentication.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api", s.authenticate)
	{
		api.POST("/upload", s.handleUpload)
		api.POST("/process-url", s.handleProcessURL)
		api.GET("/history", s.handleHistory)
		api.GET("/history/:id", s.handleHistoryGet)
		api.DELETE("/history/:id", s.handleHistoryDelete)
		api.GET("/history/:id/export", s.handleHistoryExport)
	}

	return r
}

// authenticate resolves the bearer token to a user id and aborts with 401
// when the identity collaborator rejects it.
func (s *Server) authenticate(c *gin.Context) {
	token := ""
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		token = strings.TrimPrefix(h, "Bearer ")
	}

	userID, err := s.verifier.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.Set("userID", userID)
	c.Next()
}
