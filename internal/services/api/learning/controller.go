// Package learning reserves the chat, content, and quiz endpoints. The
// features behind them are not built yet; every route answers 501 so
// clients can already code against the final URL layout.
package learning

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Controller struct{}

func NewController() *Controller { return &Controller{} }

func (c *Controller) Register(r gin.IRouter, requireUser gin.HandlerFunc) {
	chat := r.Group("/chat", requireUser)
	chat.POST("/sessions", notImplemented("chat sessions"))
	chat.GET("/sessions", notImplemented("chat sessions"))
	chat.POST("/sessions/:id/messages", notImplemented("chat messages"))

	content := r.Group("/content", requireUser)
	content.POST("/upload", notImplemented("content upload"))
	content.GET("", notImplemented("content listing"))

	quiz := r.Group("/quiz", requireUser)
	quiz.POST("/generate", notImplemented("quiz generation"))
	quiz.GET("/attempts", notImplemented("quiz attempts"))
}

func notImplemented(feature string) gin.HandlerFunc {
	return func(g *gin.Context) {
		g.JSON(http.StatusNotImplemented, gin.H{
			"message": feature + " - to be implemented",
		})
	}
}
