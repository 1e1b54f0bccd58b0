// Package view projects arbitrary object graphs into ordered, format-neutral
// documents. A View is an immutable, ordered list of field descriptors; each
// descriptor maps a dotted attribute path, a computed transform, or a
// compiled expression to a destination key. TestRenderNestedCollection shows
// the composition of sub-views across to-many relations.
package view
