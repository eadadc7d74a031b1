package handlers

import (
	"net/http"

	"github.com/farellandr/dealhub/internal/helpers"
	"github.com/farellandr/dealhub/internal/models"
	"github.com/gin-gonic/gin"
)

type TagRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

func CreateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	tag := models.Tag{Name: req.Name}
	if err := services.TagRepo.CreateTag(c.Request.Context(), &tag); err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to create tag.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tag created successfully.",
		"tag_id":  tag.ID,
	})
}

func ListTags(c *gin.Context) {
	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	tags, err := services.TagRepo.ListTags(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving tags.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func UpdateTag(c *gin.Context) {
	tagID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid tag ID.")
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	ctx := c.Request.Context()
	tag, err := services.TagRepo.FindTag(ctx, tagID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding tag.")
		return
	}
	if tag == nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Tag not found.")
		return
	}

	tag.Name = req.Name
	if err := services.TagRepo.UpdateTag(ctx, tag); err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to update tag.")
		return
	}
	invalidateTagDeals(c, tagID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Tag updated successfully.",
		"tag":     tag,
	})
}

func DeleteTag(c *gin.Context) {
	tagID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid tag ID.")
		return
	}

	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	deleted, err := services.TagRepo.DeleteTag(c.Request.Context(), tagID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete tag.")
		return
	}
	if !deleted {
		helpers.RespondWithError(c, http.StatusNotFound, "Tag not found.")
		return
	}
	invalidateTagDeals(c, tagID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Tag deleted successfully.",
	})
}

// invalidateTagDeals drops cached names of every deal carrying the tag.
func invalidateTagDeals(c *gin.Context, tagID uint) {
	services := servicesOrAbort(c)
	if services == nil || services.TagCache == nil {
		return
	}
	dealIDs, err := services.TagRepo.DealIDsForTag(c.Request.Context(), tagID)
	if err != nil || len(dealIDs) == 0 {
		return
	}
	invalidateTags(c, services, dealIDs...)
}
