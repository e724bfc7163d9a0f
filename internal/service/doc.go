// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the
// storage backend (defined in internal/store) to fulfill application
// features, translating store errors into a small fixed taxonomy for the
// HTTP layer.
package service
