// Package tracking streams order status changes to interested clients.
//
// The API publishes an Event each time an order's status changes and the
// order events endpoint relays them over server-sent events. A topic is
// closed once its order is delivered.
package tracking
