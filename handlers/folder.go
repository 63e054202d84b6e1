package handlers

import (
	"net/http"
	"strconv"

	"drivebox/utils"

	"github.com/gin-gonic/gin"
)

type CreateFolderRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	ParentID *uint  `json:"parent_id"`
}

func CreateFolder(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	folder, err := getServices().Folder.CreateFolder(c.Request.Context(), userID, req.Name, req.ParentID)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, folder)
}

// ListFolders returns every folder the user owns; clients group by
// parent_id themselves to render one tree level.
func ListFolders(c *gin.Context) {
	userID := c.GetUint("user_id")

	folders, err := getServices().Folder.ListFolders(c.Request.Context(), userID)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, folders)
}

// GetFolderPath returns the breadcrumb trail of a folder, root first.
func GetFolderPath(c *gin.Context) {
	userID := c.GetUint("user_id")

	folderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid folder id")
		return
	}

	path, svcErr := getServices().Folder.ResolvePath(c.Request.Context(), userID, uint(folderID))
	if respondServiceError(c, svcErr) {
		return
	}

	utils.Success(c, path)
}
