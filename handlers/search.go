package handlers

import (
	"drivebox/utils"

	"github.com/gin-gonic/gin"
)

// Search runs the combined folder/file name search. An empty query is
// not an error; it yields an empty result set.
func Search(c *gin.Context) {
	userID := c.GetUint("user_id")
	query := c.Query("q")

	results, err := getServices().Search.Search(c.Request.Context(), userID, query)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, results)
}
