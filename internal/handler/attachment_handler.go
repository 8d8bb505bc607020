// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"fasto-go/internal/config"
	"fasto-go/pkg/log"
	"fasto-go/pkg/storage"

	"github.com/gin-gonic/gin"
)

// AttachmentHandler 负责处理聊天图片附件的上传。
// 附件归档到对象存储，返回带时效的访问地址。
type AttachmentHandler struct{}

// NewAttachmentHandler 创建一个新的 AttachmentHandler 实例。
func NewAttachmentHandler() *AttachmentHandler {
	return &AttachmentHandler{}
}

// Upload 接收 multipart 表单中的 file 字段，写入对象存储后返回预签名 URL。
func (h *AttachmentHandler) Upload(c *gin.Context) {
	claims := mustClaims(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "缺少 file 字段",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Upload: Failed to open uploaded file", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "读取上传文件失败",
		})
		return
	}
	defer file.Close()

	// 对象名按用户和时间戳组织，避免互相覆盖
	objectName := fmt.Sprintf("attachments/%d/%d%s",
		claims.UserID, time.Now().UnixMilli(), filepath.Ext(fileHeader.Filename))
	bucketName := config.Conf.MinIO.BucketName
	contentType := fileHeader.Header.Get("Content-Type")

	if err := storage.PutAttachment(c.Request.Context(), bucketName, objectName, file, fileHeader.Size, contentType); err != nil {
		log.Errorf("Upload: Failed to store attachment for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "附件上传失败",
		})
		return
	}

	url, err := storage.GetPresignedURL(bucketName, objectName, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "生成附件访问地址失败",
		})
		return
	}

	log.Infof("User %d uploaded attachment '%s'", claims.UserID, objectName)
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"objectName": objectName,
			"url":        url,
		},
	})
}
