package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	RouteFiles = RouteApiV1 + "/files"

	RouteUsers = RouteApiV1 + "/users"
	RouteUser  = RouteUsers + "/:user_id"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
