package domain

import "time"

// SalesRow is one day of aggregated sales for a branch.
type SalesRow struct {
	Date    time.Time `bson:"date" json:"date"`
	Orders  int       `bson:"orders" json:"orders"`
	Revenue float64   `bson:"revenue" json:"revenue"`
}

// SalesBucket groups order counts and revenue under a single field value,
// e.g. per order type or per payment method.
type SalesBucket struct {
	Orders  int     `bson:"orders" json:"orders"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}

type SalesReport struct {
	From            time.Time             `json:"from"`
	To              time.Time             `json:"to"`
	TotalOrders     int                   `json:"total_orders"`
	TotalRevenue    float64               `json:"total_revenue"`
	ByDay           []SalesRow            `json:"by_day"`
	ByOrderType     map[string]SalesBucket `json:"by_order_type"`
	ByPaymentMethod map[string]SalesBucket `json:"by_payment_method"`
}

// ShiftReport summarizes a single closed POS session.
type ShiftReport struct {
	Session    PosSession `json:"session"`
	Orders     int        `json:"orders"`
	CashTotal  float64    `json:"cash_total"`
	CardTotal  float64    `json:"card_total"`
	OtherTotal float64    `json:"other_total"`
}
