package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewFeedbackValueScan(t *testing.T) {
	review := ReviewFeedback{
		Details: SectionFeedback{Status: SectionApproved},
		Pricing: SectionFeedback{Status: SectionNeedsChanges, Comments: "price per hour seems off"},
	}

	raw, err := review.Value()
	require.NoError(t, err)

	var decoded ReviewFeedback
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, review, decoded)

	// Postgres may hand back []byte instead of string.
	var fromBytes ReviewFeedback
	require.NoError(t, fromBytes.Scan([]byte(raw.(string))))
	assert.Equal(t, review, fromBytes)

	// NULL column leaves the zero value untouched.
	var empty ReviewFeedback
	require.NoError(t, empty.Scan(nil))
	assert.Equal(t, ReviewFeedback{}, empty)

	assert.Error(t, decoded.Scan(42))
}

func TestReviewFeedbackAllApproved(t *testing.T) {
	approved := SectionFeedback{Status: SectionApproved}

	review := ReviewFeedback{Details: approved, Pricing: approved, Photos: approved, Schedule: approved}
	assert.True(t, review.AllApproved())

	review.Photos = SectionFeedback{Status: SectionNeedsChanges, Comments: "add at least one interior photo"}
	assert.False(t, review.AllApproved())

	assert.False(t, ReviewFeedback{}.AllApproved(), "unreviewed sections do not count as approved")
}
