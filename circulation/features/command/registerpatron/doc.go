// Package registerpatron implements the Register Patron use case.
//
// The patron registry is an external collaborator. The engine only needs to know that a
// patron exists and how to reach them when a book they wait for becomes available.
package registerpatron
