// Package security holds the stateless authentication and role-based
// authorization primitives of the portal:
//
//   - TokenCodec issues and verifies signed session tokens (HS256 JWT).
//   - PrincipalResolver turns a token or a username/password pair into a
//     Principal whose roles are read from the account store on every call.
//   - Evaluate applies a declarative Rule to an optional Principal.
//
// The Principal travels in the request's context.Context; there is no
// process-wide security state.
package security
