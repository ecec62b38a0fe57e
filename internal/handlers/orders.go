package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pizzaria-dev/pizzaria/db"
	"github.com/pizzaria-dev/pizzaria/internal/authz"
	"github.com/pizzaria-dev/pizzaria/internal/models"
	"github.com/pizzaria-dev/pizzaria/internal/orders"
	"github.com/pizzaria-dev/pizzaria/internal/types"
	"github.com/pizzaria-dev/pizzaria/internal/utils"
)

type CreateOrderRequest struct {
	UserID *uint `json:"user_id"`
}

type AddOrderItemRequest struct {
	Quantity  int      `json:"quantity" binding:"required,gt=0"`
	Flavor    string   `json:"flavor" binding:"required"`
	Size      string   `json:"size" binding:"required"`
	UnitPrice *float64 `json:"unit_price" binding:"required,gte=0"`
}

func CreateOrder(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateOrderRequest

	// The body is optional; an empty one opens an order for the caller.
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
	}

	ownerID := currentUser.ID

	if body.UserID != nil {
		ownerID = *body.UserID
	}

	ledger := orders.NewLedger(db.DB)

	order, err := ledger.Create(ownerID)

	if err != nil {
		log.Printf("Failed to create order: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   types.NewOrderResponse(order),
	})
}

func CancelOrder(ctx *gin.Context) {
	setOrderStatus(ctx, models.OrderStatusCancelled, "Order cancelled successfully")
}

func FinalizeOrder(ctx *gin.Context) {
	setOrderStatus(ctx, models.OrderStatusCompleted, "Order finalized successfully")
}

// setOrderStatus checks existence before ownership: a missing id is not
// found even for strangers, a real one they cannot touch is unauthorized.
func setOrderStatus(ctx *gin.Context, status models.OrderStatus, message string) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orderID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	ledger := orders.NewLedger(db.DB)

	order, err := ledger.Get(orderID)

	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("Failed to fetch order: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !authz.CanAccess(authz.Actor{ID: currentUser.ID, Admin: currentUser.Admin}, order) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to perform this operation"})
		return
	}

	updated, err := ledger.SetStatus(orderID, status)

	if err != nil {
		log.Printf("Failed to update order status: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	updated.Items = order.Items

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
		"order":   types.NewOrderResponse(updated),
	})
}

func ListOrders(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !authz.CanListAll(authz.Actor{ID: currentUser.ID, Admin: currentUser.Admin}) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to perform this operation"})
		return
	}

	ledger := orders.NewLedger(db.DB)

	allOrders, err := ledger.ListAll()

	if err != nil {
		log.Printf("Failed to list orders: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	response := make([]types.OrderResponse, 0, len(allOrders))

	for i := range allOrders {
		response = append(response, types.NewOrderResponse(&allOrders[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"orders": response})
}

func AddOrderItem(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orderID, ok := parseIDParam(ctx, "order_id")

	if !ok {
		return
	}

	var body AddOrderItemRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ledger := orders.NewLedger(db.DB)

	order, err := ledger.Get(orderID)

	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("Failed to fetch order: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !authz.CanAccess(authz.Actor{ID: currentUser.ID, Admin: currentUser.Admin}, order) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to perform this operation"})
		return
	}

	itemID, newTotal, err := ledger.AddItem(orderID, body.Quantity, body.Flavor, body.Size, *body.UnitPrice)

	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("Failed to add order item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":     "Item added successfully",
		"item_id":     itemID,
		"order_total": newTotal,
	})
}

func RemoveOrderItem(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	itemID, ok := parseIDParam(ctx, "item_id")

	if !ok {
		return
	}

	ledger := orders.NewLedger(db.DB)

	item, err := ledger.GetItem(itemID)

	if err != nil {
		if errors.Is(err, orders.ErrItemNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
			return
		}
		log.Printf("Failed to fetch order item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	order, err := ledger.Get(item.OrderID)

	if err != nil {
		log.Printf("Failed to fetch order: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !authz.CanAccess(authz.Actor{ID: currentUser.ID, Admin: currentUser.Admin}, order) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to perform this operation"})
		return
	}

	remaining, updated, err := ledger.RemoveItem(itemID)

	if err != nil {
		if errors.Is(err, orders.ErrItemNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
			return
		}
		log.Printf("Failed to remove order item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":         "Item removed successfully",
		"remaining_items": remaining,
		"order":           types.NewOrderResponse(updated),
	})
}

func GetOrder(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orderID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	ledger := orders.NewLedger(db.DB)

	order, err := ledger.Get(orderID)

	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("Failed to fetch order: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !authz.CanAccess(authz.Actor{ID: currentUser.ID, Admin: currentUser.Admin}, order) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to perform this operation"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"item_count": len(order.Items),
		"order":      types.NewOrderResponse(order),
	})
}

func MyOrders(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ledger := orders.NewLedger(db.DB)

	myOrders, err := ledger.ListByOwner(currentUser.ID)

	if err != nil {
		log.Printf("Failed to list orders: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	response := make([]types.OrderResponse, 0, len(myOrders))

	for i := range myOrders {
		response = append(response, types.NewOrderResponse(&myOrders[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)

	parsed, err := strconv.ParseUint(raw, 10, 64)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}

	return uint(parsed), true
}
