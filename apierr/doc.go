// Package apierr defines the typed error surface for place operations.
//
// It provides an Error type carrying a machine-readable code, the HTTP
// status to return, and a human message, plus the pure classifier that
// maps upstream provider failures onto that taxonomy.
package apierr
