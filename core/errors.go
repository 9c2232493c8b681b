package core

import "errors"

var ErrorInvalidCircuit = errors.New("invalid circuit")
var ErrorStructuralViolation = errors.New("operation is not at a chain boundary")
var ErrorNotConverged = errors.New("reduction did not converge within the iteration limit")
var ErrorUnknownGate = errors.New("unknown gate name")
