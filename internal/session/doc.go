// Package session owns the list of imported images and their conversion
// state. It drives the rasterize-and-encode pipeline for every pending item,
// manages the display references of each item and produces single-file and
// archive exports.
//
// A Manager is safe for concurrent use. Items returned to callers are
// snapshots; the collection is only ever changed through Manager methods.
package session
