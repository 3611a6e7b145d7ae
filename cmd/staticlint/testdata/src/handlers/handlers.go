package handlers

import "github.com/gin-gonic/gin"

func record(c *gin.Context) {}

func Captured(c *gin.Context) {
	go func() {
		_ = c.Param("id") // want `\*gin.Context c captured by goroutine, use Copy\(\)`
		_ = c.Param("id")
	}()
}

func Passed(c *gin.Context) {
	go record(c) // want `\*gin.Context passed to goroutine, use Copy\(\)`
}

func Copied(c *gin.Context) {
	go record(c.Copy())

	cp := c.Copy()
	go func() {
		_ = cp.Param("id")
	}()
}

func Values(c *gin.Context) {
	id := c.Param("id")
	go func() {
		_ = id
		inner := &gin.Context{}
		_ = inner.Param("id")
	}()
}
