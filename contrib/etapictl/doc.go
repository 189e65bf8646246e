// Package etapictl implements a small command-line client on top of the
// ETAPI session API. The cobra commands live in cmd/etapictl; this package
// holds the configuration loading and the command bodies so they can be
// tested against a fake server.
package etapictl
