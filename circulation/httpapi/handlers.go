package httpapi

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/engine"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/bookstatus"
)

// Circulation is the part of the engine the HTTP layer drives.
type Circulation interface {
	Reserve(ctx context.Context, bookID, patronID uuid.UUID) engine.Result[engine.Empty]
	Borrow(ctx context.Context, bookID, patronID uuid.UUID) engine.Result[engine.Empty]
	Return(ctx context.Context, bookID uuid.UUID) engine.Result[engine.Empty]
	CancelReservation(ctx context.Context, bookID, patronID uuid.UUID) engine.Result[engine.Empty]
	RegisterNotification(ctx context.Context, bookID, patronID uuid.UUID) engine.Result[engine.Empty]
	DisableNotification(ctx context.Context, bookID, patronID uuid.UUID) engine.Result[engine.Empty]
	GetStatus(ctx context.Context, bookID uuid.UUID) engine.Result[bookstatus.BookStatus]
	AddBookCopy(ctx context.Context, book engine.BookCopy) engine.Result[engine.Empty]
	RemoveBookCopy(ctx context.Context, bookID uuid.UUID) engine.Result[engine.Empty]
	RegisterPatron(ctx context.Context, patron engine.Patron) engine.Result[engine.Empty]
}

// BookStatusResponse is the payload of the status endpoint.
type BookStatusResponse struct {
	BookID        string     `json:"bookId"`
	Status        string     `json:"status"`
	ReservedUntil *time.Time `json:"reservedUntil,omitempty"`
	BorrowedUntil *time.Time `json:"borrowedUntil,omitempty"`
}

// Handlers holds the gin handlers of the circulation endpoints.
type Handlers struct {
	circulation Circulation
	validate    *validator.Validate
}

// NewHandlers creates the handlers for the given engine.
func NewHandlers(circulation Circulation) *Handlers {
	return &Handlers{
		circulation: circulation,
		validate:    newValidator(),
	}
}

// bind runs the gin binder and validates the populated request.
func (h *Handlers) bind(c *gin.Context, request any, binder func(any) error) bool {
	if err := binder(request); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return false
	}

	if err := h.validate.Struct(request); err != nil {
		respondBadRequest(c, describeValidationError(err))
		return false
	}

	return true
}

// ReserveBook handles POST /api/transactions/:bookId/reserve?customerId=.
func (h *Handlers) ReserveBook(c *gin.Context) {
	var uri bookURI
	var query customerQuery

	if !h.bind(c, &uri, c.ShouldBindUri) || !h.bind(c, &query, c.ShouldBindQuery) {
		return
	}

	result := h.circulation.Reserve(c.Request.Context(), mustParse(uri.BookID), mustParse(query.CustomerID))
	respond(c, result, nil)
}

// BorrowBook handles POST /api/transactions/:bookId/borrow?customerId=.
func (h *Handlers) BorrowBook(c *gin.Context) {
	var uri bookURI
	var query customerQuery

	if !h.bind(c, &uri, c.ShouldBindUri) || !h.bind(c, &query, c.ShouldBindQuery) {
		return
	}

	result := h.circulation.Borrow(c.Request.Context(), mustParse(uri.BookID), mustParse(query.CustomerID))
	respond(c, result, nil)
}

// ReturnBook handles POST /api/transactions/:bookId/return.
func (h *Handlers) ReturnBook(c *gin.Context) {
	var uri bookURI
	if !h.bind(c, &uri, c.ShouldBindUri) {
		return
	}

	result := h.circulation.Return(c.Request.Context(), mustParse(uri.BookID))
	respond(c, result, nil)
}

// CancelReservation handles DELETE /api/transactions/:bookId/cancel-reservation/:customerId.
func (h *Handlers) CancelReservation(c *gin.Context) {
	var uri bookAndCustomerURI
	if !h.bind(c, &uri, c.ShouldBindUri) {
		return
	}

	result := h.circulation.CancelReservation(c.Request.Context(), mustParse(uri.BookID), mustParse(uri.CustomerID))
	respond(c, result, nil)
}

// SetNotification handles POST /api/transactions/notifications/set.
func (h *Handlers) SetNotification(c *gin.Context) {
	var request setNotificationRequest
	if !h.bind(c, &request, c.ShouldBindJSON) {
		return
	}

	result := h.circulation.RegisterNotification(
		c.Request.Context(),
		mustParse(request.BookID),
		mustParse(request.CustomerID),
	)
	respond(c, result, nil)
}

// DisableNotification handles DELETE /api/transactions/notifications/disable/:customerId/:bookId.
func (h *Handlers) DisableNotification(c *gin.Context) {
	var uri bookAndCustomerURI
	if !h.bind(c, &uri, c.ShouldBindUri) {
		return
	}

	result := h.circulation.DisableNotification(c.Request.Context(), mustParse(uri.BookID), mustParse(uri.CustomerID))
	respond(c, result, nil)
}

// GetBookStatus handles GET /api/books/:bookId/status.
func (h *Handlers) GetBookStatus(c *gin.Context) {
	var uri bookURI
	if !h.bind(c, &uri, c.ShouldBindUri) {
		return
	}

	result := h.circulation.GetStatus(c.Request.Context(), mustParse(uri.BookID))
	if !result.Success {
		respond(c, result, nil)
		return
	}

	respond(c, result, BookStatusResponse{
		BookID:        result.Payload.BookID,
		Status:        result.Payload.Status,
		ReservedUntil: result.Payload.ReservedUntil,
		BorrowedUntil: result.Payload.BorrowedUntil,
	})
}

// AddBook handles POST /api/books.
func (h *Handlers) AddBook(c *gin.Context) {
	var request addBookRequest
	if !h.bind(c, &request, c.ShouldBindJSON) {
		return
	}

	result := h.circulation.AddBookCopy(c.Request.Context(), engine.BookCopy{
		BookID:  mustParse(request.BookID),
		ISBN:    request.ISBN,
		Title:   request.Title,
		Authors: request.Authors,
	})
	respond(c, result, nil)
}

// RemoveBook handles DELETE /api/books/:bookId.
func (h *Handlers) RemoveBook(c *gin.Context) {
	var uri bookURI
	if !h.bind(c, &uri, c.ShouldBindUri) {
		return
	}

	result := h.circulation.RemoveBookCopy(c.Request.Context(), mustParse(uri.BookID))
	respond(c, result, nil)
}

// RegisterPatron handles POST /api/patrons.
func (h *Handlers) RegisterPatron(c *gin.Context) {
	var request registerPatronRequest
	if !h.bind(c, &request, c.ShouldBindJSON) {
		return
	}

	result := h.circulation.RegisterPatron(c.Request.Context(), engine.Patron{
		PatronID:                    mustParse(request.CustomerID),
		Name:                        request.Name,
		Email:                       request.Email,
		Phone:                       request.Phone,
		PreferredNotificationMethod: request.channel(),
	})
	respond(c, result, nil)
}
