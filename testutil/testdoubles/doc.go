// Package testdoubles provides spies for the observability interfaces of the domaintypes package.
//
// All spies are safe for concurrent use. Constructed with recordCalls set to false they accept
// and drop every call, which is useful for benchmarks.
package testdoubles
