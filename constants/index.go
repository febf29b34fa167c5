package constants

const (
	ROLE_ADMIN = "ADMIN"
	ROLE_USER  = "USER"
)

const (
	ERROR_INPUT              = "Invalid input data"
	ERROR_INTERNAL_ERROR     = "Internal server error"
	DATA_INPUT_IS_NOT_NUMBER = "Parameter must be a number"
	NOT_ADMIN                = "Admin permission required"

	MISSING_LOGIN_INPUT = "Email and password are required"
	INVALID_EMAIL       = "Email does not exist"
	INVALID_PASSWORD    = "Password is incorrect"
	ACCOUNT_NOT_ACTIVE  = "Account is deactivated"

	USER_NOT_FOUND    = "User not found"
	SPACE_NOT_FOUND   = "Space not found"
	BOOKING_NOT_FOUND = "Booking not found"
)
