// Package addbookcopy implements the Add Book Copy use case.
//
// Adding a copy puts it into circulation, which is the precondition of every transition.
// The catalog itself is an external collaborator; this slice only records the minimal
// facts the engine needs (identifier, ISBN, title, authors).
package addbookcopy
