package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

func Test_FilterBuilder_MatchingAnyEvent(t *testing.T) {
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	assert.True(t, filter.IsEmpty())
	assert.Empty(t, filter.Items())
}

//nolint:funlen
func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() eventstore.Filter
		validate func(t *testing.T, filter eventstore.Filter)
	}{
		{
			name: "event_types_only",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookReserved", "BookBorrowed").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.False(t, f.IsEmpty())
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"BookBorrowed", "BookReserved"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[0].Predicates())
			},
		},
		{
			name: "any_predicates_only",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyPredicateOf(eventstore.P("BookID", "b-1"), eventstore.P("BookID", "b-2")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Empty(t, f.Items()[0].EventTypes())
				assert.Len(t, f.Items()[0].Predicates(), 2)
				assert.False(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "all_predicates_only",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AllPredicatesOf(eventstore.P("BookID", "b-1"), eventstore.P("PatronID", "p-1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Empty(t, f.Items()[0].EventTypes())
				assert.Len(t, f.Items()[0].Predicates(), 2)
				assert.True(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "event_types_and_any_predicates",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookReturned", "BookReserved", "", "BookReserved").
					AndAnyPredicateOf(eventstore.P("BookID", "b-1"), eventstore.P("", "x"), eventstore.P("BookID", "b-1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"BookReserved", "BookReturned"}, f.Items()[0].EventTypes())
				assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("BookID", "b-1")}, f.Items()[0].Predicates())
				assert.False(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "event_types_and_all_predicates",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("WaitlistNotificationRegistered").
					AndAllPredicatesOf(eventstore.P("PatronID", "p-1"), eventstore.P("BookID", "b-1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"WaitlistNotificationRegistered"}, f.Items()[0].EventTypes())
				assert.True(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "all_predicates_and_event_types",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AllPredicatesOf(eventstore.P("PatronID", "p-1"), eventstore.P("BookID", "b-1")).
					AndAnyEventTypeOf("WaitlistNotificationRegistered").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.True(t, f.Items()[0].AllPredicatesMustMatch())
				assert.Equal(t,
					[]eventstore.FilterPredicate{eventstore.P("BookID", "b-1"), eventstore.P("PatronID", "p-1")},
					f.Items()[0].Predicates())
				assert.Equal(t, []string{"WaitlistNotificationRegistered"}, f.Items()[0].EventTypes())
			},
		},
		{
			name: "or_matching_combines_items",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookReserved").
					AndAnyPredicateOf(eventstore.P("BookID", "b-1")).
					OrMatching().
					AnyEventTypeOf("PatronRegistered").
					AndAnyPredicateOf(eventstore.P("PatronID", "p-1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 2)
				assert.Equal(t, []string{"BookReserved"}, f.Items()[0].EventTypes())
				assert.Equal(t, "BookID", f.Items()[0].Predicates()[0].Key())
				assert.Equal(t, []string{"PatronRegistered"}, f.Items()[1].EventTypes())
				assert.Equal(t, "PatronID", f.Items()[1].Predicates()[0].Key())
			},
		},
		{
			name: "or_matching_resets_the_all_predicates_flag",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AllPredicatesOf(eventstore.P("BookID", "b-1"), eventstore.P("PatronID", "p-1")).
					OrMatching().
					AnyPredicateOf(eventstore.P("BookID", "b-2")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 2)
				assert.True(t, f.Items()[0].AllPredicatesMustMatch())
				assert.False(t, f.Items()[1].AllPredicatesMustMatch())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.build()
			tt.validate(t, filter)
		})
	}
}

//nolint:funlen
func Test_FilterBuilder_InputSanitization(t *testing.T) {
	tests := []struct {
		name     string
		build    func() eventstore.Filter
		validate func(t *testing.T, filter eventstore.Filter)
	}{
		{
			name: "empty_event_types_are_removed",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("", "BookReserved", "", "BookBorrowed", "").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, []string{"BookBorrowed", "BookReserved"}, f.Items()[0].EventTypes())
			},
		},
		{
			name: "duplicate_event_types_are_removed_and_sorted",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookReturned", "BookBorrowed", "BookReturned", "BookReserved", "BookBorrowed").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, []string{"BookBorrowed", "BookReserved", "BookReturned"}, f.Items()[0].EventTypes())
			},
		},
		{
			name: "partial_predicates_are_removed",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyPredicateOf(
						eventstore.P("", "b-1"),
						eventstore.P("BookID", ""),
						eventstore.P("PatronID", "p-1"),
						eventstore.P("", ""),
						eventstore.P("BookID", "b-1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t,
					[]eventstore.FilterPredicate{eventstore.P("BookID", "b-1"), eventstore.P("PatronID", "p-1")},
					f.Items()[0].Predicates())
			},
		},
		{
			name: "duplicate_predicates_are_removed_and_sorted_by_key_then_value",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AllPredicatesOf(
						eventstore.P("PatronID", "p-2"),
						eventstore.P("BookID", "b-1"),
						eventstore.P("PatronID", "p-1"),
						eventstore.P("PatronID", "p-2")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t,
					[]eventstore.FilterPredicate{
						eventstore.P("BookID", "b-1"),
						eventstore.P("PatronID", "p-1"),
						eventstore.P("PatronID", "p-2"),
					},
					f.Items()[0].Predicates())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.build()
			tt.validate(t, filter)
		})
	}
}

func Test_FilterBuilder_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		build    func() eventstore.Filter
		validate func(t *testing.T, filter eventstore.Filter)
	}{
		{
			name: "only_empty_event_types_leave_an_item_without_types",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("", "").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Empty(t, f.Items()[0].EventTypes())
			},
		},
		{
			name: "only_partial_predicates_leave_an_item_without_predicates",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookReserved").
					AndAnyPredicateOf(eventstore.P("BookID", ""), eventstore.P("", "b-1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"BookReserved"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[0].Predicates())
			},
		},
		{
			name: "predicate_values_are_compared_verbatim",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyPredicateOf(eventstore.P("BookID", "B-1"), eventstore.P("BookID", "b-1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items()[0].Predicates(), 2)
				assert.Equal(t, "B-1", f.Items()[0].Predicates()[0].Val())
				assert.Equal(t, "b-1", f.Items()[0].Predicates()[1].Val())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.build()
			tt.validate(t, filter)
		})
	}
}

func Test_FilterBuilder_OrMatching_KeepsItemsIndependent(t *testing.T) {
	base := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookReserved").
		AndAnyPredicateOf(eventstore.P("BookID", "b-1")).
		OrMatching()

	first := base.AnyEventTypeOf("PatronRegistered").AndAnyPredicateOf(eventstore.P("PatronID", "p-1")).Finalize()
	second := base.AnyEventTypeOf("PatronRegistered").AndAnyPredicateOf(eventstore.P("PatronID", "p-2")).Finalize()

	assert.Len(t, first.Items(), 2)
	assert.Len(t, second.Items(), 2)
	assert.Equal(t, "p-1", first.Items()[1].Predicates()[0].Val())
	assert.Equal(t, "p-2", second.Items()[1].Predicates()[0].Val())
}
