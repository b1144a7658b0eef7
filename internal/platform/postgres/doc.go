// Package postgres contains PostgreSQL implementations of the store
// interfaces, including driver error mapping to store sentinel errors.
package postgres
