// Package switchmatrix provides the controller for an Agilent 87050A
// Option K24 multiport test set, which routes one of 24 physical ports to
// the transmit path and one to the reflect path of the analyzer.
//
// The switch is electromechanical: after every port change the controller
// blocks for a debounce interval so the caller can rely on the path having
// settled by the time the call returns. Transmit and reflect may be set in
// either order.
package switchmatrix
