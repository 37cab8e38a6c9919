package common

// AuthHeaderName is the HTTP header used to carry the backend bearer token
// on outbound requests.
const AuthHeaderName = "Authorization"
