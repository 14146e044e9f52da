// Package core defines the domain contracts of taskmesh: the delegation
// request model and its classifier, depth tracking, sub-session identity
// generation, the lifecycle event shapes, the error taxonomy, and the narrow
// interfaces through which the router reaches its external collaborators
// (agent registry, session engine, event bus, session store).
//
// The package is deliberately free of orchestration logic and holds no
// process-wide state; everything here is either a pure function of its inputs
// or an interface implemented elsewhere. Higher layers (router, engine,
// registry, session, bus) depend on core, never the other way around.
package core
