// Package providers contains the fact providers that derive build metrics
// from a BazelProfile.
//
// Every provider pulls its inputs from the registry it was registered with,
// so the providers can be registered in any order. All bindings are memoized.
package providers
