package queries

// The four admin dashboards are pure derived read-models: computed from
// store aggregates, cached as a unit under a dedicated key, and
// invalidated together whenever the admin tag fires. Their field names
// are a wire contract with the dashboard frontend and must not change.

// DashboardStatsQuery builds the summary stats dashboard
type DashboardStatsQuery struct{}

// Validate validates the DashboardStatsQuery
func (q DashboardStatsQuery) Validate() error { return nil }

// PieChartsQuery builds the pie-chart dashboard
type PieChartsQuery struct{}

// Validate validates the PieChartsQuery
func (q PieChartsQuery) Validate() error { return nil }

// BarChartsQuery builds the bar-chart dashboard
type BarChartsQuery struct{}

// Validate validates the BarChartsQuery
func (q BarChartsQuery) Validate() error { return nil }

// LineChartsQuery builds the line-chart dashboard
type LineChartsQuery struct{}

// Validate validates the LineChartsQuery
func (q LineChartsQuery) Validate() error { return nil }

// StatsCount holds the headline totals
type StatsCount struct {
	Revenue float64 `json:"revenue"`
	User    int     `json:"user"`
	Product int     `json:"product"`
	Order   int     `json:"order"`
}

// StatsChart holds the six-month order and revenue series
type StatsChart struct {
	Order   []float64 `json:"order"`
	Revenue []float64 `json:"revenue"`
}

// UserRatio is the gender split of the user base
type UserRatio struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// TransactionSummary is one row of the latest-transactions table
type TransactionSummary struct {
	ID       string  `json:"_id"`
	Discount float64 `json:"discount"`
	Amount   float64 `json:"amount"`
	Quantity int     `json:"quantity"`
	Status   string  `json:"status"`
}

// DashboardStats is the summary stats dashboard
type DashboardStats struct {
	RevenueChangePercent float64              `json:"revenueChangePercent"`
	ProductChangePercent float64              `json:"productChangePercent"`
	UserChangePercent    float64              `json:"userChangePercent"`
	OrderChangePercent   float64              `json:"orderChangePercent"`
	Count                StatsCount           `json:"count"`
	Chart                StatsChart           `json:"chart"`
	CategoryCount        []map[string]int     `json:"categoryCount"`
	UserRatio            UserRatio            `json:"userRatio"`
	LatestTransaction    []TransactionSummary `json:"latestTransaction"`
}

// OrderFulfillment is the order-status split
type OrderFulfillment struct {
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
}

// StockAvailability is the in/out-of-stock split
type StockAvailability struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

// RevenueDistribution is the gross-income cost breakdown. Marketing
// cost is modeled as a fixed 30% of gross income.
type RevenueDistribution struct {
	NetMargin      float64 `json:"netMargin"`
	Discount       float64 `json:"discount"`
	ProductionCost float64 `json:"productionCost"`
	Burnt          float64 `json:"burnt"`
	MarketingCost  float64 `json:"marketingCost"`
}

// UsersAgeGroup is the age-cohort split: under 20, 20-39, 40 and over
type UsersAgeGroup struct {
	Teen  int `json:"teen"`
	Adult int `json:"adult"`
	Old   int `json:"old"`
}

// AdminCustomer is the role split of the user base
type AdminCustomer struct {
	Admin    int `json:"admin"`
	Customer int `json:"customer"`
}

// PieCharts is the pie-chart dashboard
type PieCharts struct {
	OrderFulfillment    OrderFulfillment    `json:"orderFulfillment"`
	ProductCategories   []map[string]int    `json:"productCategories"`
	StockAvailability   StockAvailability   `json:"stockAvailability"`
	RevenueDistribution RevenueDistribution `json:"revenueDistribution"`
	UsersAgeGroup       UsersAgeGroup       `json:"usersAgeGroup"`
	AdminCustomer       AdminCustomer       `json:"adminCustomer"`
}

// BarCharts is the bar-chart dashboard: six months of products and
// users, twelve months of orders
type BarCharts struct {
	ProductCounts []float64 `json:"productCounts"`
	UserCounts    []float64 `json:"userCounts"`
	OrderCounts   []float64 `json:"orderCounts"`
}

// LineCharts is the line-chart dashboard: twelve-month series
type LineCharts struct {
	Users    []float64 `json:"users"`
	Product  []float64 `json:"product"`
	Discount []float64 `json:"discount"`
	Revenue  []float64 `json:"revenue"`
}
