package readmodel

import (
	"cmp"
	"slices"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// GroupCount is the number of rows sharing one group key.
type GroupCount struct {
	Key   string `json:"grupo"`
	Count int64  `json:"quantidade"`
}

// SortGroups orders groups by key so responses are deterministic.
func SortGroups(groups []GroupCount) []GroupCount {
	if groups == nil {
		return []GroupCount{}
	}
	slices.SortFunc(groups, func(a, b GroupCount) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return groups
}

// OrderCustomer is one row of the order ⨝ customer join.
type OrderCustomer struct {
	OrderID      int64
	Date         domain.Date
	Status       string
	CustomerName string
}

// ItemSummary is the nested line-item shape of an order detail.
type ItemSummary struct {
	GarmentID int64           `json:"roupa_id"`
	Quantity  int64           `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"preco_unitario"`
}

// OrderDetail is an order with its customer's name and its line items.
type OrderDetail struct {
	OrderID  int64         `json:"pedido_id"`
	Date     domain.Date   `json:"data"`
	Status   string        `json:"status"`
	Customer string        `json:"cliente"`
	Items    []ItemSummary `json:"itens"`
}

// GarmentWithSupplier flattens a garment and its supplier's name.
type GarmentWithSupplier struct {
	GarmentID int64  `json:"roupa_id"`
	Name      string `json:"nome"`
	Supplier  string `json:"fornecedor"`
}

// OrderIDs lists the ids of the joined orders, in order.
func OrderIDs(orders []OrderCustomer) []int64 {
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}

// NestOrderItems attaches each line item to its order. items may come from a
// single batched query; every order appears once regardless of item count.
func NestOrderItems(orders []OrderCustomer, items []domain.LineItem) []OrderDetail {
	byOrder := make(map[int64][]ItemSummary, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], ItemSummary{
			GarmentID: item.GarmentID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	details := make([]OrderDetail, 0, len(orders))
	for _, o := range orders {
		nested := byOrder[o.OrderID]
		if nested == nil {
			nested = []ItemSummary{}
		}
		details = append(details, OrderDetail{
			OrderID:  o.OrderID,
			Date:     o.Date,
			Status:   o.Status,
			Customer: o.CustomerName,
			Items:    nested,
		})
	}
	return details
}
