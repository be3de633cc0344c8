// Package statsview serves runtime statistics over HTTP when built with
// the statsview build tag. Without the tag, Launch reports that the
// server is unavailable.
//
// Statistics are viewable at:
//
//	localhost:12600/debug/statsview
package statsview
