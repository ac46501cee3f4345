package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents invalid input.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a missing record.
	GeneralNotFoundError ErrorCode = "general_not_found_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// ErrInsufficientCash is returned when a buy fill costs more than the available cash.
	ErrInsufficientCash ErrorCode = "insufficient_cash"
	// ErrInsufficientPosition is returned when a sell fill exceeds the held quantity.
	ErrInsufficientPosition ErrorCode = "insufficient_position"
	// ErrInvalidQuantity is returned for zero, negative or non finite quantities.
	ErrInvalidQuantity ErrorCode = "invalid_quantity"
	// ErrInvalidPrice is returned for negative or non finite prices.
	ErrInvalidPrice ErrorCode = "invalid_price"
	// ErrNoMarketPrice is returned when no fill price can be resolved for a symbol.
	ErrNoMarketPrice ErrorCode = "no_market_price"
	// ErrSignalAlreadyProcessed is returned when a signal has left the PENDING state.
	ErrSignalAlreadyProcessed ErrorCode = "signal_already_processed"
	// ErrSignalNotFound is returned when a signal id does not exist.
	ErrSignalNotFound ErrorCode = "signal_not_found"
	// ErrPortfolioNotFound is returned when the configured portfolio does not exist.
	ErrPortfolioNotFound ErrorCode = "portfolio_not_found"
	// ErrUnknownStrategy is returned by the strategy factory for unregistered kinds.
	ErrUnknownStrategy ErrorCode = "unknown_strategy"
	// ErrInvalidStrategyConfig is returned when strategy parameters fail validation.
	ErrInvalidStrategyConfig ErrorCode = "invalid_strategy_config"
	// ErrLockNotAcquired is returned when another instance holds the portfolio lease.
	ErrLockNotAcquired ErrorCode = "lock_not_acquired"

	// ErrUpstreamStatus is returned when the market data API answers with an unexpected status.
	ErrUpstreamStatus ErrorCode = "upstream_status_error"
	// ErrUpstreamDecode is returned when the market data API answers with an unreadable body.
	ErrUpstreamDecode ErrorCode = "upstream_decode_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"
	// RedisSetNXError represents an error when setting a value in Redis with SetNX.
	RedisSetNXError ErrorCode = "redis_setnx_error"
	// RedisEvalError represents an error when running a script in Redis.
	RedisEvalError ErrorCode = "redis_eval_error"
)

// Category groups error codes by the layer that produced them.
type Category string

const (
	// CategoryDatabase indicates an error related to database operations.
	CategoryDatabase Category = "database"
	// CategoryNetwork indicates an error related to network operations.
	CategoryNetwork Category = "network"
	// CategoryValidation indicates an error related to validation of input data.
	CategoryValidation Category = "validation"
	// CategoryBusinessLogic indicates an error related to business rules such as cash checks.
	CategoryBusinessLogic Category = "business_logic"
	// CategoryExternal indicates an error related to external services or APIs.
	CategoryExternal Category = "external"
	// CategoryUnknown indicates an unknown error category.
	CategoryUnknown Category = "unknown"
)

var categories = map[ErrorCode]Category{
	GeneralBadRequestError:    CategoryValidation,
	GeneralRepositoryError:    CategoryDatabase,
	ErrInsufficientCash:       CategoryBusinessLogic,
	ErrInsufficientPosition:   CategoryBusinessLogic,
	ErrInvalidQuantity:        CategoryValidation,
	ErrInvalidPrice:           CategoryValidation,
	ErrNoMarketPrice:          CategoryBusinessLogic,
	ErrSignalAlreadyProcessed: CategoryBusinessLogic,
	ErrSignalNotFound:         CategoryDatabase,
	ErrPortfolioNotFound:      CategoryDatabase,
	ErrUnknownStrategy:        CategoryValidation,
	ErrInvalidStrategyConfig:  CategoryValidation,
	ErrLockNotAcquired:        CategoryDatabase,
	ErrUpstreamStatus:         CategoryExternal,
	ErrUpstreamDecode:         CategoryExternal,
	RedisConnectionError:      CategoryNetwork,
	RedisPingError:            CategoryNetwork,
}

// CategoryOf returns the category registered for code.
func CategoryOf(code ErrorCode) Category {
	if c, ok := categories[code]; ok {
		return c
	}
	return CategoryUnknown
}

// IsBusinessRejection reports whether err carries a code that should reject a signal
// instead of failing the transaction that applies it.
func IsBusinessRejection(err error) bool {
	details, ok := AsErrorDetails(err)
	if !ok {
		return false
	}
	switch CategoryOf(ErrorCode(details.Code)) {
	case CategoryBusinessLogic, CategoryValidation:
		return ErrorCode(details.Code) != ErrSignalAlreadyProcessed
	}
	return false
}
