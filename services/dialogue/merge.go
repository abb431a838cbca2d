// File: skybook/services/dialogue/merge.go
package dialogue

import "skybook/models"

// MergeContext folds freshly extracted entities into the accumulated
// context. A field is only overwritten by a non-empty extraction; a turn
// that fails to re-extract a known value never clears it. The input is not
// mutated, so callers can compare before and after for change detection.
func MergeContext(cur models.ConversationContext, e models.ExtractedEntities) models.ConversationContext {
	merged := cur
	if e.Origin != "" {
		merged.Origin = e.Origin
	}
	if e.Destination != "" {
		merged.Destination = e.Destination
	}
	if e.TravelDate != "" {
		merged.DepartureDate = e.TravelDate
	}
	return merged
}

// MergePassenger applies the same keep-known rule to passenger details.
func MergePassenger(cur, extracted models.PassengerDetails) models.PassengerDetails {
	merged := cur
	if extracted.FullName != "" {
		merged.FullName = extracted.FullName
	}
	if extracted.Email != "" {
		merged.Email = extracted.Email
	}
	if extracted.Phone != "" {
		merged.Phone = extracted.Phone
	}
	if extracted.Age != 0 {
		merged.Age = extracted.Age
	}
	return merged
}
