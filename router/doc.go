// Package router implements the delegation router, the orchestrating core of
// taskmesh. Given a raw request and an explicit parent invocation context it
// classifies the request as spawn or resume, enforces the recursion depth
// bound, resolves identity, and drives exactly one session engine turn framed
// by the tool:pre / tool:post / tool:error lifecycle events.
//
// The router is a stateless, reentrant function of its inputs: it holds no
// locks, owns no long-lived resources, and blocks only for the duration of
// the engine call. All failures are terminal for the current delegation and
// are returned as typed errors; nothing is retried and nothing may crash the
// caller's own turn.
package router
