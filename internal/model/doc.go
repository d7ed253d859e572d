// Package model defines domain data structures used across the app: bookmark
// folder trees, download tasks, playlist entities, and status enums.
// Structures are plain values with explicit state transitions.
package model
