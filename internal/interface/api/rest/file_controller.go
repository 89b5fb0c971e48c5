package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safechain-api/internal/application/ports"
	"safechain-api/internal/infrastructure/jwt"
	fileDTO "safechain-api/internal/interface/api/rest/dto/file"
	"safechain-api/internal/interface/api/rest/middleware"
	"safechain-api/internal/interface/api/rest/validator"
)

// 10MB
const maxSize = int64(10 << 20)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	authed := r.Group("", middleware.AuthMiddleware(jwtService))

	authed.POST(RouteFiles, fc.UploadHandler)
	authed.GET(RouteFiles, fc.GetOwnedFilesHandler)
	authed.GET(RouteFilesSharedWithMe, fc.GetSharedWithMeHandler)
	authed.GET(RouteFileDownload, fc.DownloadHandler)
	authed.POST(RouteFileShare, fc.ShareHandler)
	authed.POST(RouteFileUnshare, fc.UnshareHandler)
	authed.GET(RouteFileShares, fc.GetSharesHandler)
	authed.DELETE(RouteFile, fc.DeleteHandler)

	return fc
}

func (fc *FileController) UploadHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size <= 0 || fh.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large or empty"})
		return
	}

	f, err := fc.fileService.Upload(c.Request.Context(), principal, fh)
	if err != nil {
		respondError(c, fc.logger, "Upload()", err)
		return
	}

	c.JSON(http.StatusCreated, fileDTO.ToResponseFile(*f))
}

func (fc *FileController) GetOwnedFilesHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	files, err := fc.fileService.ListOwned(c.Request.Context(), principal)
	if err != nil {
		respondError(c, fc.logger, "ListOwned()", err)
		return
	}

	c.JSON(http.StatusOK, fileDTO.ResponseData{
		Data: fileDTO.ToResponseFiles(files),
	})
}

func (fc *FileController) GetSharedWithMeHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	files, err := fc.fileService.ListSharedWithMe(c.Request.Context(), principal)
	if err != nil {
		respondError(c, fc.logger, "ListSharedWithMe()", err)
		return
	}

	c.JSON(http.StatusOK, fileDTO.ResponseData{
		Data: fileDTO.ToResponseFiles(files),
	})
}

func (fc *FileController) DownloadHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	f, path, err := fc.fileService.Download(c.Request.Context(), principal, fileUUID)
	if err != nil {
		respondError(c, fc.logger, "Download()", err)
		return
	}

	c.Header("Content-Type", f.ContentType)
	c.FileAttachment(path, f.FileName)
}

func (fc *FileController) ShareHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	var req fileDTO.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}
	if errs := validator.ValidateShare(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	msg, err := fc.fileService.Share(c.Request.Context(), principal, fileUUID, req.Email)
	if err != nil {
		respondError(c, fc.logger, "Share()", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (fc *FileController) UnshareHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	var req fileDTO.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}
	if errs := validator.ValidateShare(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	msg, err := fc.fileService.Unshare(c.Request.Context(), principal, fileUUID, req.Email)
	if err != nil {
		respondError(c, fc.logger, "Unshare()", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (fc *FileController) GetSharesHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	shares, err := fc.fileService.ListShares(c.Request.Context(), principal, fileUUID)
	if err != nil {
		respondError(c, fc.logger, "ListShares()", err)
		return
	}

	c.JSON(http.StatusOK, fileDTO.SharesResponseData{
		Data: fileDTO.ToResponseShares(shares),
	})
}

func (fc *FileController) DeleteHandler(c *gin.Context) {
	principal, ok := principalUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	ok, fileUUID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	msg, err := fc.fileService.Delete(c.Request.Context(), principal, fileUUID)
	if err != nil {
		respondError(c, fc.logger, "Delete()", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
