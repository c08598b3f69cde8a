// Package command declares the TV's operation catalog and executes it
// over a protocol session.
//
// Every operation is a Descriptor: a service URI, an optional payload
// template whose fields may reference call-time arguments, an optional
// response validator and transform, and a subscription flag. A single
// Dispatcher entry point executes any descriptor generically and manages
// the named subscriptions built on descriptors that allow them.
//
// The catalog itself (media, tv, system, application, input, source) is
// plain configuration; the Dispatcher contains all the behavior.
package command
