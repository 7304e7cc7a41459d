// Package sim runs fixed-step simulations of a [dynamo.System].
//
// The recurrence is strictly sequential: every step consumes the state
// produced by the previous one, so a run is a single blocking loop with no
// cancellation point.
package sim
