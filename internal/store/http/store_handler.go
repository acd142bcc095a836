package http

import (
	"errors"
	"net/http"

	"github.com/Slassh006/FF1/internal/pkg/logging"
	"github.com/Slassh006/FF1/internal/store/domain"
	"github.com/gin-gonic/gin"
)

type purchaseRequestBody struct {
	ItemId         int    `json:"itemId" binding:"required"`
	Quantity       *int64 `json:"quantity"`
	IdempotencyKey string `json:"idempotencyKey"`
}

type purchaseResponse struct {
	OrderId        int   `json:"orderId"`
	RemainingCoins int64 `json:"remainingCoins"`
}

type userStatsResponse struct {
	Coins          int64 `json:"coins"`
	OrdersPlaced   int64 `json:"ordersPlaced"`
	ItemsPurchased int64 `json:"itemsPurchased"`
}

type StoreHandler struct {
	purchaseService PurchaseService
	catalogService  CatalogService
	statsService    StatsService
	logger          logging.Logger
}

func NewStoreHandler(purchaseService PurchaseService, catalogService CatalogService, statsService StatsService, logger logging.Logger) *StoreHandler {
	return &StoreHandler{
		purchaseService: purchaseService,
		catalogService:  catalogService,
		statsService:    statsService,
		logger:          logger,
	}
}

func (h *StoreHandler) Purchase(c *gin.Context) {
	var body purchaseRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	// Omitted quantity means one unit. An explicit zero is a caller error and
	// goes through so it is rejected, not bought.
	quantity := int64(1)
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	userId := c.GetInt(UserIdContextKey)

	order, err := h.purchaseService.Purchase(c.Request.Context(), userId, body.ItemId, quantity, body.IdempotencyKey)
	if err != nil {
		h.handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchaseResponse{
		OrderId:        order.Id,
		RemainingCoins: order.Payment.BalanceAfter,
	})
}

func (h *StoreHandler) ListItems(c *gin.Context) {
	items, err := h.catalogService.ListActiveItems(c.Request.Context())
	if err != nil {
		h.handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *StoreHandler) GetUserStats(c *gin.Context) {
	userId := c.GetInt(UserIdContextKey)

	stats, err := h.statsService.GetUserStats(c.Request.Context(), userId)
	if err != nil {
		h.handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, userStatsResponse{
		Coins:          stats.CoinBalance,
		OrdersPlaced:   stats.OrdersPlaced,
		ItemsPurchased: stats.ItemsPurchased,
	})
}

func (h *StoreHandler) handleDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, &domain.InvalidArgumentsError{}):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	case errors.Is(err, &domain.ItemNotFoundError{}), errors.Is(err, &domain.UserNotFoundError{}):
		c.JSON(http.StatusNotFound, gin.H{"errors": err.Error()})
	case errors.Is(err, &domain.ItemUnavailableError{}),
		errors.Is(err, &domain.InsufficientBalanceError{}):
		c.JSON(http.StatusConflict, gin.H{"errors": err.Error()})
	case errors.Is(err, &domain.DuplicateRequestError{}):
		var dup *domain.DuplicateRequestError
		if errors.As(err, &dup) && dup.OrderId != 0 {
			c.JSON(http.StatusConflict, gin.H{"errors": err.Error(), "orderId": dup.OrderId})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"errors": err.Error()})
	case errors.Is(err, &domain.TransactionConflictError{}):
		c.JSON(http.StatusServiceUnavailable, gin.H{"errors": "store is busy, try again"})
	default:
		h.logger.Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
	}
}
