// Package kernel contains shared value objects used across domain aggregates:
// order numbers, identifiers, and money rounding. Value objects are immutable
// and must be created through their constructor functions; zero values fail
// validation.
package kernel
