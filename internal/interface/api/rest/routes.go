package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth     = RouteApiV1 + "/auth"
	RouteRegister = RouteAuth + "/register"
	RouteLogin    = RouteAuth + "/login"

	// files
	RouteFiles             = RouteApiV1 + "/files"
	RouteFilesSharedWithMe = RouteFiles + "/shared-with-me"
	RouteFile              = RouteFiles + "/:file_id"
	RouteFileDownload      = RouteFile + "/download"
	RouteFileShare         = RouteFile + "/share"
	RouteFileUnshare       = RouteFile + "/unshare"
	RouteFileShares        = RouteFile + "/shares"

	// activity
	RouteActivity = RouteApiV1 + "/activity"

	// admin
	RouteAdmin         = RouteApiV1 + "/admin"
	RouteAdminActivity = RouteAdmin + "/activity"
	RouteAdminUsers    = RouteAdmin + "/users"
	RouteAdminUser     = RouteAdminUsers + "/:user_id"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
