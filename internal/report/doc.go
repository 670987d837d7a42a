// Package report collects facts from a registry and renders them.
//
// Collect requests facts concurrently, then reads back the registry's
// provider view. The result can be written as text, as a JSON document or in
// the Prometheus text exposition format.
package report
