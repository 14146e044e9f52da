// Package tool exposes the delegation router as a model-facing "task" tool:
// a JSON-schema input contract, a dynamic description enumerating the agents
// currently registered, argument validation, and caller-controlled context
// inheritance from the parent transcript.
//
// The tool is a thin surface over router.Router; all routing, depth and
// identity decisions stay in the router.
package tool
