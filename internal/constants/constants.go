package constants

// Centralized constants for env keys, headers, routes and API messages.
const (
	// Environment variable keys
	EnvSessionSecret = "ARENA_SESSION_SECRET"
	EnvAdminToken    = "ARENA_ADMIN_TOKEN"
	EnvConfigPath    = "ARENA_CONFIG"
	EnvDBPath        = "ARENA_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAdminToken    = "X-Admin-Token"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Context keys set by the auth middleware
	CtxAccountUUID = "accountUUID"
	CtxAccountName = "accountName"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteRegister = "/auth/register"

	RoutePets        = "/pets"
	RoutePetByID     = "/pets/:petID"
	RoutePetStats    = "/pets/:petID/stats"
	RoutePetHistory  = "/pets/:petID/history"
	RoutePetEligible = "/pets/:petID/eligible"

	RouteBattles        = "/battles"
	RouteBattleByID     = "/battles/:battleID"
	RouteBattleAccept   = "/battles/:battleID/accept"
	RouteBattleDecline  = "/battles/:battleID/decline"
	RouteBattleMove     = "/battles/:battleID/move"
	RouteBattleUltimate = "/battles/:battleID/ultimate"
	RouteBattleEffect   = "/battles/:battleID/effect"
	RouteBattleForfeit  = "/battles/:battleID/forfeit"
	RouteBattleClaim    = "/battles/:battleID/claim"
	RouteBattleWatch    = "/battles/:battleID/watch"

	RouteMatchmakingEnter = "/matchmaking/enter"
	RouteMatchmakingLeave = "/matchmaking/leave"

	RouteLeaderboard = "/leaderboard"
	RouteParameters  = "/parameters"
	RouteChainHeight = "/chain/height"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest  = "Invalid request"
	ErrInvalidBattleID = "Invalid battle ID"
	ErrInvalidPetID    = "Invalid pet ID"
	ErrBattleNotFound  = "Battle not found"
	ErrPetNotFound     = "Pet not found"
	ErrAuthRequired    = "Authentication required"
	ErrInvalidSession  = "Invalid session"
	ErrAdminOnly       = "Admin token required"
	ErrInternal        = "Internal error"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldPetID    = "pet_id"
	LogFieldAccount  = "account"
	LogFieldBlock    = "block"
	LogFieldTurn     = "turn"
	LogFieldMove     = "move"
	LogFieldEffect   = "effect"
	LogFieldRating   = "rating"
	LogFieldAddr     = "addr"
)
