package core

// BookIsInCirculation reports whether the book was added to circulation and not removed since.
func BookIsInCirculation(history DomainEvents, bookID BookIDString) bool {
	inCirculation := false

	for _, event := range history {
		switch e := event.(type) {
		case BookCopyAddedToCirculation:
			if e.BookID == bookID {
				inCirculation = true
			}

		case BookCopyRemovedFromCirculation:
			if e.BookID == bookID {
				inCirculation = false
			}
		}
	}

	return inCirculation
}

// BookIsKnown reports whether the book was ever added to circulation, even if it was removed since.
func BookIsKnown(history DomainEvents, bookID BookIDString) bool {
	for _, event := range history {
		if e, ok := event.(BookCopyAddedToCirculation); ok && e.BookID == bookID {
			return true
		}
	}

	return false
}

// RegisteredPatron returns the latest registration of the given patron.
func RegisteredPatron(history DomainEvents, patronID PatronIDString) (PatronRegistered, bool) {
	var (
		registration PatronRegistered
		found        bool
	)

	for _, event := range history {
		if e, ok := event.(PatronRegistered); ok && e.PatronID == patronID {
			registration = e
			found = true
		}
	}

	return registration, found
}

// RegisteredPatrons indexes all patron registrations in the history by PatronID.
func RegisteredPatrons(history DomainEvents) map[PatronIDString]PatronRegistered {
	patrons := make(map[PatronIDString]PatronRegistered)

	for _, event := range history {
		if e, ok := event.(PatronRegistered); ok {
			patrons[e.PatronID] = e
		}
	}

	return patrons
}
