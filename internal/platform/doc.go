package platform

// Package platform contains OS integration glue: default download directory,
// filesystem helpers, artifact path resolution, and OS open/reveal.
