// Package connectors provides implementations of the Connector interface
// for document locations. Each connector knows how to read documents from
// a specific kind of location and watch it for changes.
package connectors
