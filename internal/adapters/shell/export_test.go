package shell

// ResolveEnvironment exports resolveEnvironment for testing.
var ResolveEnvironment = resolveEnvironment

// LookPath exports lookPath for testing.
var LookPath = lookPath
