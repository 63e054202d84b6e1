package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"drivebox/config"
	"drivebox/services"
	"drivebox/utils"

	"github.com/gin-gonic/gin"
)

// UploadFile accepts a multipart form: the file part plus a display name
// and an optional folder reference ("", "root" or a folder id).
func UploadFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	name := c.PostForm("name")
	folderRef := c.PostForm("folder")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	if header.Size > config.AppConfig.Upload.MaxFileSize {
		utils.Error(c, http.StatusBadRequest, "file exceeds the size limit")
		return
	}

	contentType := header.Header.Get("Content-Type")

	created, svcErr := getServices().File.UploadFile(c.Request.Context(), userID, services.UploadInput{
		Name:        name,
		FolderRef:   folderRef,
		Content:     file,
		Size:        header.Size,
		ContentType: contentType,
	})
	if respondServiceError(c, svcErr) {
		return
	}

	utils.Success(c, created)
}

func ListFiles(c *gin.Context) {
	userID := c.GetUint("user_id")

	var folderID *uint
	if raw, ok := c.GetQuery("folder_id"); ok {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid folder id")
			return
		}
		id := uint(parsed)
		folderID = &id
	}

	files, err := getServices().File.ListFiles(c.Request.Context(), userID, folderID)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, files)
}

// GetFileContent streams raw bytes by content handle. The route is not
// behind auth: possession of the handle is the access check.
func GetFileContent(c *gin.Context) {
	handle := c.Param("handle")

	out, err := getServices().File.GetContent(c.Request.Context(), handle)
	if respondServiceError(c, err) {
		return
	}
	defer out.Body.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", out.Name),
	}
	c.DataFromReader(http.StatusOK, out.Size, out.ContentType, out.Body, extraHeaders)
}

func GetThumbnail(c *gin.Context) {
	userID := c.GetUint("user_id")

	fileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid file id")
		return
	}

	out, svcErr := getServices().File.GetThumbnail(c.Request.Context(), userID, uint(fileID))
	if respondServiceError(c, svcErr) {
		return
	}
	defer out.Body.Close()

	c.DataFromReader(http.StatusOK, out.Size, out.ContentType, out.Body, nil)
}
