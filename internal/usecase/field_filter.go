package usecase

// Writable fields per role. Anything not listed is dropped before a write.
var (
	listingUserFields = []string{
		"title", "description", "price", "location", "country", "image",
		"lat", "lng", "category", "badges_category", "cleaning_fee",
		"service_fee_pct", "guests", "amenities",
	}
	listingAdminFields = []string{"is_verified"}

	reservationUserFields  = []string{"check_in", "check_out", "adults", "children"}
	reservationAdminFields = []string{"status", "is_verified"}

	profileFields = []string{"email", "phone", "location"}
)

// FilterListingUpdates keeps only the listing fields the caller may write.
// Verification is admin-only and is silently removed for everyone else.
func FilterListingUpdates(updates map[string]interface{}, isAdmin bool) map[string]interface{} {
	allowed := listingUserFields
	if isAdmin {
		allowed = append(append([]string{}, listingUserFields...), listingAdminFields...)
	}
	return pick(updates, allowed)
}

// FilterReservationUpdates keeps only the reservation fields the caller may write.
// Status and verification are admin-only and silently removed for everyone else.
func FilterReservationUpdates(updates map[string]interface{}, isAdmin bool) map[string]interface{} {
	allowed := reservationUserFields
	if isAdmin {
		allowed = append(append([]string{}, reservationUserFields...), reservationAdminFields...)
	}
	return pick(updates, allowed)
}

func filterProfileUpdates(updates map[string]interface{}) map[string]interface{} {
	return pick(updates, profileFields)
}

func pick(updates map[string]interface{}, allowed []string) map[string]interface{} {
	out := make(map[string]interface{}, len(allowed))
	for _, k := range allowed {
		if v, ok := updates[k]; ok {
			out[k] = v
		}
	}
	return out
}
