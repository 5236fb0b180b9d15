package server

// Server is the lifecycle contract of the form server.
type Server interface {
	// RunServer serves requests and blocks until a stop signal arrives.
	RunServer()

	// Shutdown drains in-flight requests and closes the listener.
	Shutdown()
}
