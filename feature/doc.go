// Package feature models Onshape feature definitions.
//
// A descriptor (Sketch, Extrude, Fillet, Thicken, Gear) holds the typed,
// validated fields of one parametric CAD operation and builds the serialized
// BTM form the Onshape feature API accepts. Counterbore holes are planned as
// a chain of sketch/extrude pairs and submitted in dependency order by the
// Resolver, which binds each sketch's service-assigned feature ID into the
// extrude that consumes it before that extrude is submitted.
//
// All validation is local and runs before anything touches the network: a
// descriptor that builds successfully is safe to submit as-is.
package feature
