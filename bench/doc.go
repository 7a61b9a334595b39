// Package bench measures per-call latency and throughput of every hashkit
// algorithm over a fixed set of payload lengths.
//
// Latencies are collected with tachymeter; sizes and rates are rendered with
// go-humanize. The same payloads are used on every run (seeded RNG), so
// numbers are comparable across machines and versions.
package bench
