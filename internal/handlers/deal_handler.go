package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/farellandr/dealhub/internal/deals"
	"github.com/farellandr/dealhub/internal/helpers"
	"github.com/farellandr/dealhub/internal/middleware"
	"github.com/farellandr/dealhub/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type DealRequest struct {
	Title              string            `json:"title" binding:"required"`
	Subtitle           string            `json:"subtitle"`
	Value              decimal.Decimal   `json:"value"`
	Instructions       string            `json:"instructions"`
	MultipleItems      bool              `json:"multiple_items"`
	Sil                bool              `json:"sil"`
	Power              int               `json:"power"`
	AvailableAddresses []uint            `json:"available_addresses"`
	DealLinks          []models.DealLink `json:"deal_links"`
	AddressID          *uint             `json:"address_id"`
	PublishedAt        *time.Time        `json:"published_at"`
	EndsAt             *time.Time        `json:"ends_at"`
	TagIDs             []uint            `json:"tag_ids"`
}

func (req DealRequest) apply(deal *models.Deal) {
	deal.Title = req.Title
	deal.Subtitle = req.Subtitle
	deal.Value = req.Value
	deal.Instructions = req.Instructions
	deal.MultipleItems = req.MultipleItems
	deal.Sil = req.Sil
	deal.Power = req.Power
	deal.AvailableAddresses = models.AddressList(req.AvailableAddresses)
	deal.DealLinks = models.DealLinks(req.DealLinks)
	deal.AddressID = req.AddressID
	deal.PublishedAt = req.PublishedAt
	deal.EndsAt = req.EndsAt
}

func servicesOrAbort(c *gin.Context) *middleware.Services {
	services := middleware.GetServices(c)
	if services == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Services not configured.")
	}
	return services
}

// findDeal loads the deal named by the :id parameter, which may be an id or a slug.
func findDeal(c *gin.Context, services *middleware.Services) (*models.Deal, bool) {
	deal, err := services.Deals.FindDeal(c.Request.Context(), c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Deal not found.")
		return nil, false
	}
	return deal, true
}

// buildView renders a deal. Degraded views are still returned.
func buildView(c *gin.Context, services *middleware.Services, deal *models.Deal) (*deals.DealView, error) {
	view, err := services.Deals.BuildView(c.Request.Context(), deal, middleware.GetViewer(c))
	if view != nil {
		return view, nil
	}
	return nil, err
}

func ListDeals(c *gin.Context) {
	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	pageNum, limitNum, err := helpers.ParsePagination(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters.")
		return
	}

	filter := deals.ListFilter{
		Page:      pageNum,
		Limit:     limitNum,
		PowerOnly: c.Query("power") == "1",
	}
	list, totalCount, err := services.Deals.ListDeals(c.Request.Context(), filter)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving deals.")
		return
	}

	views := make([]*deals.DealView, 0, len(list))
	for i := range list {
		view, err := buildView(c, services, &list[i])
		if err != nil {
			helpers.RespondWithServiceError(c, err, "Error retrieving deals.")
			return
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"deals":       views,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func GetDeal(c *gin.Context) {
	services := servicesOrAbort(c)
	if services == nil {
		return
	}
	deal, ok := findDeal(c, services)
	if !ok {
		return
	}

	view, err := buildView(c, services, deal)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving deal.")
		return
	}

	c.JSON(http.StatusOK, view)
}

func GetDealMeta(c *gin.Context) {
	services := servicesOrAbort(c)
	if services == nil {
		return
	}
	deal, ok := findDeal(c, services)
	if !ok {
		return
	}

	title := c.Param("title")
	value, err := services.Deals.MetaByTitle(c.Request.Context(), deal, title)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving deal meta.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title": title,
		"value": value,
	})
}

func GetDealAddresses(c *gin.Context) {
	services := servicesOrAbort(c)
	if services == nil {
		return
	}
	deal, ok := findDeal(c, services)
	if !ok {
		return
	}

	addresses, err := services.Deals.AvailableAddresses(c.Request.Context(), deal)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving addresses.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

func GetDealItems(c *gin.Context) {
	services := servicesOrAbort(c)
	if services == nil {
		return
	}
	deal, ok := findDeal(c, services)
	if !ok {
		return
	}

	items, err := services.Deals.UniqueItems(c.Request.Context(), deal)
	if err != nil {
		helpers.RespondWithServiceError(c, err, "Error retrieving items.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unique_items": items})
}

func GetDealBenefits(c *gin.Context) {
	services := servicesOrAbort(c)
	if services == nil {
		return
	}
	deal, ok := findDeal(c, services)
	if !ok {
		return
	}

	tags, err := services.TagRepo.Benefits(c.Request.Context(), deal.ID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving benefits.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"benefits": tags})
}

func GetDealComments(c *gin.Context) {
	services := servicesOrAbort(c)
	if services == nil {
		return
	}
	deal, ok := findDeal(c, services)
	if !ok {
		return
	}

	comments, err := services.DealRepo.TopLevelComments(c.Request.Context(), deal.ID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving comments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func CreateDeal(c *gin.Context) {
	var req DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	staffID := c.GetUint("user_id")
	if staffID == 0 {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	deal := models.Deal{CreatedByID: &staffID}
	req.apply(&deal)

	ctx := c.Request.Context()
	if err := services.DealRepo.Create(ctx, &deal); err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to create deal.")
		return
	}

	if len(req.TagIDs) > 0 {
		if err := syncTags(c, services, deal.ID, req.TagIDs); err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Deal created but tags could not be saved.")
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Deal created successfully.",
		"deal_id": deal.ID,
		"slug":    deal.Slug,
	})
}

func UpdateDeal(c *gin.Context) {
	dealID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid deal ID.")
		return
	}

	var req DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	ctx := c.Request.Context()
	deal, err := services.DealRepo.FindDeal(ctx, dealID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding deal.")
		return
	}
	if deal == nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Deal not found.")
		return
	}

	req.apply(deal)
	if err := services.DealRepo.Update(ctx, deal); err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to update deal.")
		return
	}

	if req.TagIDs != nil {
		if err := syncTags(c, services, deal.ID, req.TagIDs); err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Deal updated but tags could not be saved.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deal updated successfully.",
		"deal_id": deal.ID,
	})
}

func DeleteDeal(c *gin.Context) {
	dealID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid deal ID.")
		return
	}

	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	if err := services.DealRepo.Delete(c.Request.Context(), dealID); err != nil {
		helpers.RespondWithServiceError(c, err, "Failed to delete deal.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deal deleted successfully.",
	})
}

func RestoreDeal(c *gin.Context) {
	dealID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid deal ID.")
		return
	}

	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	if err := services.DealRepo.Restore(c.Request.Context(), dealID); err != nil {
		if errors.Is(err, deals.ErrDealNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Deleted deal not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to restore deal.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deal restored successfully.",
	})
}

func UploadDealPicture(c *gin.Context) {
	dealID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid deal ID.")
		return
	}

	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	ctx := c.Request.Context()
	deal, err := services.DealRepo.FindDeal(ctx, dealID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding deal.")
		return
	}
	if deal == nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Deal not found.")
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Picture file is required.")
		return
	}

	uploadConfig := helpers.DefaultImageUploadConfig
	if services.MediaCfg.UploadDir != "" {
		uploadConfig.UploadBasePath = services.MediaCfg.UploadDir
	}
	if services.MediaCfg.MaxSizeBytes > 0 {
		uploadConfig.MaxSizeBytes = services.MediaCfg.MaxSizeBytes
	}

	stored, err := helpers.UploadFile(c, fileHeader, models.PicturesCollection, uploadConfig)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	media := models.Media{
		ModelID:  deal.ID,
		FileName: stored.FileName,
		Path:     stored.Path,
		MimeType: stored.MimeType,
		Size:     stored.Size,
		FullURL:  helpers.PublicURL(services.MediaCfg.BaseURL, models.PicturesCollection, stored.FileName),
		CustomProperties: map[string]interface{}{
			"original_name": stored.OriginalName,
		},
	}

	replaced, err := services.Media.ReplacePicture(ctx, &media)
	if err != nil {
		helpers.DeleteFile(stored.Path)
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save picture.")
		return
	}
	for _, old := range replaced {
		if err := helpers.DeleteFile(old.Path); err != nil {
			slog.Warn("failed to remove replaced picture", "path", old.Path, "error", err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Picture uploaded successfully.",
		"picture_url": media.FullURL,
	})
}

func syncTags(c *gin.Context, services *middleware.Services, dealID uint, tagIDs []uint) error {
	ctx := c.Request.Context()
	if err := services.TagRepo.SyncDealTags(ctx, dealID, tagIDs); err != nil {
		return err
	}
	invalidateTags(c, services, dealID)
	return nil
}

func invalidateTags(c *gin.Context, services *middleware.Services, dealIDs ...uint) {
	if services.TagCache == nil {
		return
	}
	if err := services.TagCache.Invalidate(c.Request.Context(), dealIDs...); err != nil {
		slog.Warn("failed to invalidate cached tag names", "deal_ids", dealIDs, "error", err)
	}
}
