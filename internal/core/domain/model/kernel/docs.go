// Package kernel contains the shared value objects of the buyback domain:
// UUID identifiers, cents-backed Money amounts and the human-facing
// OrderNumber. All types are immutable and must be created through their
// constructor functions; zero values fail Validate.
package kernel
