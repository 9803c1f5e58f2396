package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HelloMessage 连通性检查的固定回复
const HelloMessage = "Hello World! Your API is working correctly."

// Hello 连通性检查，直接返回 JSON，不使用统一响应结构
// @Summary 连通性检查
// @Tags 测试
// @Produce json
// @Router /api/v1/test/hello [post]
func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": HelloMessage})
}
