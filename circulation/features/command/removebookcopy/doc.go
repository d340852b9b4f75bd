// Package removebookcopy implements the Remove Book Copy use case.
//
// Removing a copy clears its active flag; afterwards no transition accepts the book.
// Open transactions are left untouched, so a borrowed copy can still be returned.
package removebookcopy
