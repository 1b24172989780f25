// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by handlers.
// Client ports describe the collaborators an operation drives (transactional
// store, cache, notifier, dispatcher) and are implemented by outbound adapters.
package ports
