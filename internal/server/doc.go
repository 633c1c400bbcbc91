// Package server runs the contacts transports: the REST API over HTTP and,
// when SERVER_GRPC_ADDRESS is set, the gRPC health service.
//
// Both are started together and stopped together on SIGINT, SIGTERM or
// SIGQUIT. In-flight HTTP requests get a grace period before the listener
// closes.
package server
