package server

// Server is the set of transports built by [NewServer].
type Server interface {
	// RunServer serves the REST API (and gRPC health, when enabled) until a
	// stop signal arrives.
	RunServer()

	// Shutdown drains in-flight requests and closes every listener.
	Shutdown()
}
