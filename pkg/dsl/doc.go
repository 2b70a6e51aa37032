// Package dsl parses and formats the compact tree description language.
//
// The language exists for hand-authoring: a tree that takes a screenful
// of JSON fits in a few lines of DSL. One document describes one tree,
// with optional spacing and sizing directives ahead of the root node:
//
//	// a small family tree
//	gap 30 15      // vertical, horizontal
//	size 40 20     // default box, applied to nodes without explicit sizes
//
//	node "Grandma" 60 20 {
//	  node "Mom" {
//	    node "Me"
//	    node "Sister" 45 20
//	  }
//	  node "Uncle"
//	}
//
// Labels are Go-style quoted strings. A node may carry an explicit
// "width height" pair; otherwise the size directive fills it in, and
// absent both the dimensions stay zero for the measuring stage to
// resolve. Line comments (//) and block comments (/* */) are allowed
// anywhere whitespace is.
//
// [Parse] and [ParseString] produce a [treefile.Doc], the same document
// type the JSON and YAML readers produce, so downstream stages never see
// the syntax. [Format] renders a document back as canonical DSL.
package dsl
