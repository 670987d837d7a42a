// Package profile assembles a decoded Bazel trace into per-thread event lists.
//
// The BazelProfile fact is the root input of every other provider. It is built
// once per analysis from a tef.Trace and exposes the threads, their names
// (from "thread_name" metadata), and the complete, counter and instant events
// each thread recorded.
package profile
