// Package domain holds the side-effect items an operation buffers until it
// closes (Task and Notice), the rules that combine them, and the sentinel
// errors shared across layers.
//
// Items are plain values. Whether two items can be combined is decided by the
// incoming item's merger; an item without a merger is always kept as is.
package domain
