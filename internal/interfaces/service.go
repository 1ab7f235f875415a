package interfaces

// Service defines the methods every transport serving the daemon, whether
// websocket, REST, or whatever must be compliant with.
type Service interface {
	Start() error
	Stop()
}
