// Package services contains application services that coordinate the domain
// model with the outbound ports: the order number generator, the
// conversation thread binder, and the label resolver.
//
// These services own the cross-cutting invariants that no single command
// handler should re-implement: number uniqueness with bounded retry, the
// one-thread-per-order guarantee, and write-once label generation per
// direction.
package services
