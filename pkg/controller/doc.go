// Package controller declares admin controllers as plain data and mounts them
// on an httprouter.Router.
//
// A Controller carries the feature tag the host uses to build menus and an
// Authenticated flag enforced through a GuardFunc. Controllers may declare no
// routes at all; they still contribute their feature to the registry.
package controller
