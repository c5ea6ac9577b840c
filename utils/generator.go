package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateBookingRef produces a short human-quotable booking reference like
// "FRB-9F2A1C3D".
func GenerateBookingRef() string {
	id := uuid.New().String()
	return fmt.Sprintf("FRB-%s", strings.ToUpper(id[:8]))
}
