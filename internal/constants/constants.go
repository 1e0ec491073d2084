package constants

const (
	MinPasswordLength = 8

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	ContextKeyUser = "current_user"

	MinJWTSecretLength = 32
)
