// Package api defines the domain types, wire contracts, validation rules,
// and error taxonomy shared by all beitrag packages.
//
// Types split into two groups: storage-facing records (User, Post) and the
// typed request/response shapes exchanged with HTTP clients. The password
// hash lives only on User and is never serialized; clients always receive
// the PublicUser projection.
package api
