// Package symdex loads, queries and persists documentation search indexes
// of the kind Doxygen emits into search/*.js: a table mapping normalized
// symbol names to the documentation anchors that define them.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, tagfile/).
package symdex
