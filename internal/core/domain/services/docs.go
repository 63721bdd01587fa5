// Package services contains stateless domain services that implement
// business logic spanning value objects without touching infrastructure.
//
// LabelRouter builds the from/to address pair for a shipping label from an
// order and a direction flag. The two directions are exact mirror images:
// outbound ships customer -> business, return ships business -> customer.
package services
