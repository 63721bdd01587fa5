// Package order contains the buyback order aggregate and its lifecycle state
// machine.
//
// An order moves from submission to resolution along a fixed set of edges:
//
//	pending_shipment ──> label_generated ──> re_offer_pending ──┬──> offer_accepted
//	                                                            ├──> auto_accepted
//	                                                            └──> return_requested ──> return_label_generated
//
// Status is only ever mutated through the transition methods on Order, which
// validate the current state, stamp the corresponding timestamps exactly once
// and keep the re-offer sub-record consistent. Persistence adapters commit
// every transition with a conditional write on the expected prior status, so
// two racing resolutions of the same re-offer can never both win.
package order
