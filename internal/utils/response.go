package utils

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, data gin.H) {
	c.JSON(200, gin.H{
		"success": true,
		"data":    data,
	})
}

func Created(c *gin.Context, message string, data gin.H) {
	c.JSON(201, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": msg,
	})
}

// ServerError reports a 500 with the underlying error attached only in
// development (gin debug mode), never in release mode.
func ServerError(c *gin.Context, msg string, err error) {
	body := gin.H{
		"success": false,
		"message": msg,
	}
	if gin.IsDebugging() && err != nil {
		body["error"] = err.Error()
	}
	c.JSON(500, body)
}
