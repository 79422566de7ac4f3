package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteToken = RouteAuth + "/token"

	// registration + nested customer routes
	RouteUsers         = RouteApiV1 + "/users"
	RouteUserCustomers = RouteUsers + "/:user_id/customers"

	// admin
	RouteAdminUsers = RouteApiV1 + "/admin/users"
	RouteAdminUser  = RouteAdminUsers + "/:user_id"

	// customers
	RouteCustomers = RouteApiV1 + "/customers"
	RouteCustomer  = RouteCustomers + "/:customer_id"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
