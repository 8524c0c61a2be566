// Package entity holds the persisted record types served by the query
// engine, together with their schema descriptors.
//
// Descriptors list only the columns callers may filter, sort and project.
// The password hash of a Usuario is stored but never described, so no
// query can select or match on it.
package entity
