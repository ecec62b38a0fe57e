package types

import "github.com/pizzaria-dev/pizzaria/internal/models"

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

type OrderItemResponse struct {
	ID        uint    `json:"id"`
	Quantity  int     `json:"quantity"`
	Flavor    string  `json:"flavor"`
	Size      string  `json:"size"`
	UnitPrice float64 `json:"unit_price"`
}

type OrderResponse struct {
	ID     uint                `json:"id"`
	UserID uint                `json:"user_id"`
	Status models.OrderStatus  `json:"status"`
	Total  float64             `json:"total"`
	Items  []OrderItemResponse `json:"items"`
}

func NewOrderResponse(order *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))

	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			Quantity:  item.Quantity,
			Flavor:    item.Flavor,
			Size:      item.Size,
			UnitPrice: item.UnitPrice,
		})
	}

	return OrderResponse{
		ID:     order.ID,
		UserID: order.UserID,
		Status: order.Status,
		Total:  order.Total,
		Items:  items,
	}
}
