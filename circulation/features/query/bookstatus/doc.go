// Package bookstatus implements the Book Status query use case.
//
// The status is resolved at the instant carried by the query, so the result is never stored
// and a lapsed reservation or borrow shows as Available without any cleanup.
package bookstatus
