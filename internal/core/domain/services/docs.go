// Package services contains domain services: logic that operates on domain
// concepts but does not belong to a single aggregate. The tracking normalizer
// maps heterogeneous carrier status vocabularies onto the canonical one used
// by the order lifecycle.
package services
