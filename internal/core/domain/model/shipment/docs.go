// Package shipment contains the Shipment entity created when an order ships.
//
// Each order gets at most one shipment. The shipment number is derived from
// the order number plus the ship timestamp, and the tracking number is a
// globally unique identifier handed to the carrier.
package shipment
