package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/todolist/internal/api/dto"
)

// ErrorHandlerMiddleware handles panics and errors
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
				renderInternalError(c)
				c.Abort()
			}
		}()

		c.Next()

		// Check if there are any errors
		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			log.Printf("error serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err.Err)
			if !c.Writer.Written() {
				renderInternalError(c)
			}
		}
	}
}

func renderInternalError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "error.html", dto.ErrorPage{
		Title:   "Error",
		Status:  http.StatusInternalServerError,
		Message: "Ha ocurrido un error inesperado.",
	})
}
