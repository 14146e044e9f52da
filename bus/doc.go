// Package bus houses concrete implementations of core.EventBus. The interface
// lives in core to centralize domain contracts; keeping only implementations
// here prevents the router from depending on concrete dispatch.
//
// Add additional backends (NATS, webhook fan-out, etc.) alongside without
// changing any calling code, only the wiring layer picks the implementation.
package bus
