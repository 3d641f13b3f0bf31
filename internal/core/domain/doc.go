// Package domain contains the core business entities and rules for Formpilot.
// It has no dependencies on adapters or external services, following
// hexagonal architecture principles.
package domain
