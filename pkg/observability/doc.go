/*
Package observability exposes Prometheus metrics for the assistant:
turns by intent, fallback frequency, and turn latency. The turn engine
reports through a small Recorder interface so the core stays free of
the metrics dependency.
*/
package observability
