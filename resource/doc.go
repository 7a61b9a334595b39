// Package resource bounds the work done by batch hashing: concurrent jobs,
// chunk buffer memory and read throughput.
package resource
