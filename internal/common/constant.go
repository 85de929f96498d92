package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the expected scheme prefix of the Authorization header.
const BearerPrefix = "Bearer "

// DateLayout is the wire format for entry creation dates (UTC, date granularity).
const DateLayout = "2006-01-02"
