// Package main provides domaintypes-inspect, a command that resolves the library catalog
// and prints the serializer profile of every domain type.
//
// It is configured through environment variables:
//
//	DOMAINTYPES_FORMAT         table (default), json or yaml
//	DOMAINTYPES_LOG_LEVEL      debug, info (default), warn or error
//	DOMAINTYPES_LOG_FORMAT     text (default) or json
//	DOMAINTYPES_SAMPLES        publish one encoded sample per domain type as JSON lines
//	DOMAINTYPES_PARALLELISM    concurrent sample deliveries (default 4)
//	DOMAINTYPES_OTLP_ENDPOINT  OTLP gRPC endpoint for metrics and traces, disabled when empty
//	DOMAINTYPES_TIMEOUT        overall deadline (default 30s)
package main
