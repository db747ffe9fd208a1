package entity

// CascadeResult counts the documents touched by a cascade operation.
type CascadeResult struct {
	UsersDeleted        int64 `json:"users_deleted"`
	ListingsDeleted     int64 `json:"listings_deleted"`
	ReviewsDeleted      int64 `json:"reviews_deleted"`
	ReservationsDeleted int64 `json:"reservations_deleted"`
	ReferencesPulled    int64 `json:"references_pulled"`
	// Resumed is set when the parent was already gone and only leftovers were purged.
	Resumed bool `json:"resumed"`
}

// Affected returns the total number of documents removed or modified.
func (r *CascadeResult) Affected() int64 {
	return r.UsersDeleted + r.ListingsDeleted + r.ReviewsDeleted + r.ReservationsDeleted + r.ReferencesPulled
}

// Add accumulates other into r.
func (r *CascadeResult) Add(other *CascadeResult) {
	if other == nil {
		return
	}
	r.UsersDeleted += other.UsersDeleted
	r.ListingsDeleted += other.ListingsDeleted
	r.ReviewsDeleted += other.ReviewsDeleted
	r.ReservationsDeleted += other.ReservationsDeleted
	r.ReferencesPulled += other.ReferencesPulled
}
