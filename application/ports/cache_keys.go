package ports

// Cache keys are built only through these constructors so that the
// populating read paths and the invalidation table cannot drift apart
// on a typo. Every key a read path can write appears in some tag's
// invalidation list.

const (
	keyLatestProducts = "latest-product"
	keyCategories     = "categories"
	keyAllProducts    = "all-products"
	keyAllOrders      = "all-orders"
	keyAdminStats     = "admin-stats"
	keyAdminPie       = "admin-pie-chart"
	keyAdminBar       = "admin-bar-charts"
	keyAdminLine      = "admin-line-charts"
)

// LatestProductsKey caches the newest-products listing.
func LatestProductsKey() string { return keyLatestProducts }

// CategoriesKey caches the distinct category list.
func CategoriesKey() string { return keyCategories }

// AllProductsKey caches the full admin product listing.
func AllProductsKey() string { return keyAllProducts }

// ProductKey caches a single product by id.
func ProductKey(id string) string { return "product-" + id }

// AllOrdersKey caches the full admin order listing.
func AllOrdersKey() string { return keyAllOrders }

// MyOrdersKey caches one user's order listing.
func MyOrdersKey(userID string) string { return "my-orders-" + userID }

// OrderKey caches a single order by id.
func OrderKey(id string) string { return "order-" + id }

// AdminStatsKey caches the summary stats dashboard.
func AdminStatsKey() string { return keyAdminStats }

// AdminPieKey caches the pie-chart dashboard.
func AdminPieKey() string { return keyAdminPie }

// AdminBarKey caches the bar-chart dashboard.
func AdminBarKey() string { return keyAdminBar }

// AdminLineKey caches the line-chart dashboard.
func AdminLineKey() string { return keyAdminLine }
