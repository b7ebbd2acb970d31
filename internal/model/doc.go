package model

// Package model defines domain data structures used across the app: user
// preferences, format presets, media metadata, progress events and the error
// taxonomy. Structures are plain values with explicit state transitions.
