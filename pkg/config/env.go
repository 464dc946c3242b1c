package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultReservationDurationMin = "DEFAULT_RESERVATION_DURATION_MIN"
	EnvGridHourStep                  = "GRID_HOUR_STEP"
	EnvAdjacencyIsConflict           = "ADJACENCY_IS_CONFLICT"
	EnvAdmissionLockTTL              = "ADMISSION_LOCK_TTL"
)
