// internal/handlers/market.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zakvibe/zakvibe-backend/internal/engine"
	"github.com/zakvibe/zakvibe-backend/internal/provider"
	"github.com/zakvibe/zakvibe-backend/internal/services"
	"github.com/zakvibe/zakvibe-backend/internal/utils"
)

type MarketHandler struct {
	marketService   *services.MarketService
	activityService *services.ActivityService
}

func NewMarketHandler(marketService *services.MarketService, activityService *services.ActivityService) *MarketHandler {
	return &MarketHandler{
		marketService:   marketService,
		activityService: activityService,
	}
}

type AnalyzeRequest struct {
	Keyword string `json:"keyword" validate:"omitempty,keyword"`
	URL     string `json:"url" validate:"omitempty,url"`
}

type XrayRequest struct {
	Keyword  string             `json:"keyword"`
	Products []engine.RawRecord `json:"products" validate:"required,min=1"`
}

type SourcingRequest struct {
	Query string `json:"query" validate:"required,min=2,max=255"`
}

type ProfitRequest struct {
	SellPrice      float64 `json:"sellPrice" validate:"required,gt=0"`
	CostPrice      float64 `json:"costPrice" validate:"min=0"`
	Quantity       int     `json:"quantity" validate:"min=0"`
	FulfillmentFee float64 `json:"fulfillmentFee" validate:"min=0"`
	ReferralFeePct float64 `json:"referralFeePct" validate:"min=0,max=100"`
	BSR            int     `json:"bsr" validate:"min=0"`
}

// POST /market/analyze
func (h *MarketHandler) AnalyzeKeyword(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	keyword := req.Keyword
	if keyword == "" {
		keyword = services.ExtractKeyword(req.URL)
	}
	if keyword == "" {
		utils.BadRequestResponse(c, "Provide a keyword or a marketplace search URL", nil)
		return
	}

	result, err := h.marketService.AnalyzeKeyword(c.Request.Context(), keyword)
	if err != nil {
		h.respondAnalysisError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /market/xray
func (h *MarketHandler) AnalyzeListings(c *gin.Context) {
	var req XrayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.marketService.AnalyzeListings(c.Request.Context(), req.Keyword, req.Products)
	if err != nil {
		h.respondAnalysisError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /market/activity
func (h *MarketHandler) GetActivity(c *gin.Context) {
	utils.SuccessResponse(c, h.activityService.Recent())
}

// GET /market/stats
func (h *MarketHandler) GetStats(c *gin.Context) {
	utils.SuccessResponse(c, h.activityService.Stats())
}

// GET /market/history
func (h *MarketHandler) GetHistory(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	analyses, total, err := h.marketService.History(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(analyses, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /market/sourcing
func (h *MarketHandler) FindSourcing(c *gin.Context) {
	var req SourcingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	offers, err := h.marketService.Sourcing(c.Request.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrNotConfigured):
			utils.ServiceUnavailableResponse(c, "Sourcing lookup requires a configured data provider")
		case errors.Is(err, provider.ErrUnavailable):
			utils.ServiceUnavailableResponse(c, "Sourcing data is temporarily unavailable")
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, offers)
}

// POST /market/profit
func (h *MarketHandler) CalculateProfit(c *gin.Context) {
	var req ProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	fulfillmentFee := req.FulfillmentFee
	if fulfillmentFee == 0 {
		fulfillmentFee = engine.FlatFulfillmentFee
	}

	result := engine.CalculateProfit(engine.ProfitInput{
		SellPrice:      req.SellPrice,
		CostPrice:      req.CostPrice,
		Quantity:       req.Quantity,
		FulfillmentFee: fulfillmentFee,
		ReferralFeePct: req.ReferralFeePct,
	})

	response := gin.H{"profit": result}
	if req.BSR > 0 {
		response["estimatedMonthlySales"] = engine.EstimateSalesFromBSR(req.BSR)
	}

	utils.SuccessResponse(c, response)
}

func (h *MarketHandler) respondAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoData), errors.Is(err, engine.ErrNoListings):
		utils.NotFoundResponse(c, "No market data found for this keyword")
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
