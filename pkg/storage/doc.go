// Package storage defines the persistence contracts for users and posts.
// Implementations live in subpackages: postgres (production) and memory
// (tests and lightweight deployments).
package storage
