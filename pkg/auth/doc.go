// Package auth implements the authentication core: credential storage with
// bcrypt hashing, the per-request authorization gate that turns a session
// token into an authenticated user, and the post ownership check.
//
// Token issuance and verification live in the token subpackage.
package auth
