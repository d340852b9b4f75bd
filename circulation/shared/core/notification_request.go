package core

// NotificationRequest is a patron's "notify me when available" request for one book.
// It is projected from the waitlist events by ProjectNotificationRequests.
type NotificationRequest struct {
	ID       NotificationIDString
	BookID   BookIDString
	PatronID PatronIDString
	Notified bool
}

// NotificationRequests is a slice of NotificationRequest in registration order.
type NotificationRequests = []NotificationRequest

// ProjectNotificationRequests replays the waitlist events of one book.
// Registration inserts a request, disabling deletes it and a delivered notification marks it as notified.
func ProjectNotificationRequests(history DomainEvents, bookID BookIDString) NotificationRequests {
	requests := make(NotificationRequests, 0)

	indexOf := func(notificationID NotificationIDString) int {
		for i := range requests {
			if requests[i].ID == notificationID {
				return i
			}
		}

		return -1
	}

	for _, event := range history {
		switch e := event.(type) {
		case WaitlistNotificationRegistered:
			if e.BookID == bookID {
				requests = append(requests, NotificationRequest{
					ID:       e.NotificationID,
					BookID:   e.BookID,
					PatronID: e.PatronID,
				})
			}

		case WaitlistNotificationDisabled:
			if e.BookID != bookID {
				continue
			}

			if i := indexOf(e.NotificationID); i >= 0 {
				requests = append(requests[:i], requests[i+1:]...)
			}

		case PatronNotifiedAboutAvailability:
			if e.BookID != bookID {
				continue
			}

			if i := indexOf(e.NotificationID); i >= 0 {
				requests[i].Notified = true
			}
		}
	}

	return requests
}

// PendingRequests returns the requests that were not notified yet.
func PendingRequests(requests NotificationRequests) NotificationRequests {
	pending := make(NotificationRequests, 0, len(requests))

	for _, request := range requests {
		if !request.Notified {
			pending = append(pending, request)
		}
	}

	return pending
}

// PendingRequestOf returns the un-notified request of the given patron, if there is one.
func PendingRequestOf(requests NotificationRequests, patronID PatronIDString) (NotificationRequest, bool) {
	for _, request := range requests {
		if request.PatronID == patronID && !request.Notified {
			return request, true
		}
	}

	return NotificationRequest{}, false
}
