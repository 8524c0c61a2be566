// Package auth hashes passwords and issues the bearer tokens returned by
// the login route.
package auth
