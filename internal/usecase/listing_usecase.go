package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// ListingUsecase implements IListingUseCase.
type ListingUsecase struct {
	listingRepo   contract.IListingRepository
	reviewRepo    contract.IReviewRepository
	cascade       usecasecontract.ICascadeUseCase
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	listingCache  contract.IListingCache
	geocoder      contract.IGeocoder
}

var _ usecasecontract.IListingUseCase = (*ListingUsecase)(nil)

func NewListingUsecase(
	listingRepo contract.IListingRepository,
	reviewRepo contract.IReviewRepository,
	cascade usecasecontract.ICascadeUseCase,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *ListingUsecase {
	return &ListingUsecase{
		listingRepo:   listingRepo,
		reviewRepo:    reviewRepo,
		cascade:       cascade,
		uuidGenerator: uuidGenerator,
		logger:        logger,
	}
}

// SetListingCache allows wiring a cache after construction (optional)
func (uc *ListingUsecase) SetListingCache(c contract.IListingCache) { uc.listingCache = c }

// SetGeocoder enables filling coordinates from the listing address (optional)
func (uc *ListingUsecase) SetGeocoder(g contract.IGeocoder) { uc.geocoder = g }

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// CreateListing publishes a new, unverified listing owned by the actor.
func (uc *ListingUsecase) CreateListing(ctx context.Context, actor entity.Actor, input usecasecontract.ListingInput) (*entity.Listing, error) {
	if actor.UserID == "" {
		return nil, entity.ErrUnauthorized
	}

	now := time.Now()
	listing := &entity.Listing{
		ID:             uc.uuidGenerator.NewUUID(),
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Price:          input.Price,
		Location:       strings.TrimSpace(input.Location),
		Country:        strings.TrimSpace(input.Country),
		Image:          input.Image,
		Lat:            entity.DefaultLatitude,
		Lng:            entity.DefaultLongitude,
		OwnerID:        actor.UserID,
		Category:       input.Category,
		BadgesCategory: input.BadgesCategory,
		ServiceFeePct:  entity.DefaultServiceFeePct,
		Guests:         input.Guests,
		Amenities:      input.Amenities,
		ReviewIDs:      []string{},
		ReservationIDs: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if listing.BadgesCategory == "" {
		listing.BadgesCategory = entity.DefaultBadgesCategory
	}
	if input.CleaningFee != nil {
		listing.CleaningFee = *input.CleaningFee
	}
	if input.ServiceFeePct != nil {
		listing.ServiceFeePct = *input.ServiceFeePct
	}
	switch {
	case input.Lat != nil && input.Lng != nil:
		listing.Lat, listing.Lng = *input.Lat, *input.Lng
	default:
		if p := uc.geocode(ctx, listing.Location, listing.Country); p != nil {
			listing.Lat, listing.Lng = p.Lat, p.Lng
		}
	}

	if err := validateListing(listing); err != nil {
		return nil, err
	}
	if err := uc.listingRepo.CreateListing(ctx, listing); err != nil {
		uc.logger.Errorf("failed to create listing: %v", err)
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	uc.logger.Infof("listing created: id=%s owner=%s", listing.ID, listing.OwnerID)
	return listing, nil
}

// geocode resolves the address, returning nil when no geocoder is wired or the lookup fails.
func (uc *ListingUsecase) geocode(ctx context.Context, location, country string) *contract.GeoPoint {
	if uc.geocoder == nil || (location == "" && country == "") {
		return nil
	}
	address := strings.Trim(location+", "+country, ", ")
	p, err := uc.geocoder.Geocode(ctx, address)
	if err != nil {
		uc.logger.Warnf("geocoding %q failed, keeping default coordinates: %v", address, err)
		return nil
	}
	return p
}

// GetListing returns a listing with its reviews. Unverified listings are only
// visible to their owner and to admins.
func (uc *ListingUsecase) GetListing(ctx context.Context, viewer entity.Actor, listingID string) (*usecasecontract.ListingDetails, error) {
	listing := uc.cachedListing(ctx, listingID)
	if listing == nil {
		var err error
		listing, err = uc.listingRepo.GetListingByID(ctx, listingID)
		if err != nil {
			return nil, err
		}
		if listing.IsVerified && uc.listingCache != nil {
			_ = uc.listingCache.SetListing(ctx, listing)
		}
	}
	if !listing.IsVerified && !viewer.IsAdmin() && !listing.IsOwnedBy(viewer.UserID) {
		return nil, fmt.Errorf("listing %s: %w", listingID, entity.ErrNotFound)
	}

	reviews, err := uc.reviewRepo.ListReviewsByListing(ctx, listingID)
	if err != nil {
		uc.logger.Errorf("failed to load reviews of listing %s: %v", listingID, err)
		return nil, errors.New(errInternalServer)
	}
	return &usecasecontract.ListingDetails{Listing: listing, Reviews: reviews}, nil
}

func (uc *ListingUsecase) cachedListing(ctx context.Context, listingID string) *entity.Listing {
	if uc.listingCache == nil {
		return nil
	}
	t0 := time.Now()
	cached, found, err := uc.listingCache.GetListing(ctx, listingID)
	elapsed := time.Since(t0)
	switch {
	case err != nil:
		uc.logger.Warningf("cache error: listing detail id=%s err=%v", listingID, err)
		return nil
	case found && cached != nil:
		metrics.IncDetailHit()
		metrics.AddHitDuration(elapsed.Seconds())
		return cached
	default:
		metrics.IncDetailMiss()
		metrics.AddMissDuration(elapsed.Seconds())
		return nil
	}
}

// ListListings returns a page of the public index.
func (uc *ListingUsecase) ListListings(ctx context.Context, page, pageSize int) ([]entity.Listing, int64, error) {
	return uc.verifiedPage(ctx, "", page, pageSize)
}

// SearchListings filters the public index by a case-insensitive substring of location or country.
func (uc *ListingUsecase) SearchListings(ctx context.Context, query string, page, pageSize int) ([]entity.Listing, int64, error) {
	return uc.verifiedPage(ctx, strings.TrimSpace(query), page, pageSize)
}

func (uc *ListingUsecase) verifiedPage(ctx context.Context, query string, page, pageSize int) ([]entity.Listing, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	key := fmt.Sprintf("page=%d:size=%d:q=%s", page, pageSize, strings.ToLower(query))

	if uc.listingCache != nil {
		t0 := time.Now()
		cached, found, err := uc.listingCache.GetListingsPage(ctx, key)
		elapsed := time.Since(t0)
		if err == nil && found && cached != nil {
			metrics.IncListHit()
			metrics.AddHitDuration(elapsed.Seconds())
			uc.logger.Debugf("cache hit: listings key=%s took=%s", key, elapsed)
			return cached.Listings, cached.Total, nil
		} else if err == nil {
			metrics.IncListMiss()
			metrics.AddMissDuration(elapsed.Seconds())
		} else {
			uc.logger.Warningf("cache error: listings key=%s err=%v", key, err)
		}
	}

	found, total, err := uc.listingRepo.ListListings(ctx, &contract.ListingFilterOptions{
		VerifiedOnly: true,
		Query:        query,
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		uc.logger.Errorf("failed to list listings: %v", err)
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	listings := make([]entity.Listing, 0, len(found))
	for _, l := range found {
		listings = append(listings, *l)
	}

	if uc.listingCache != nil {
		_ = uc.listingCache.SetListingsPage(ctx, key, &contract.CachedListingsPage{Listings: listings, Total: total})
	}
	return listings, total, nil
}

func (uc *ListingUsecase) ListOwnerListings(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	listings, _, err := uc.listingRepo.ListListings(ctx, &contract.ListingFilterOptions{OwnerID: ownerID})
	return listings, err
}

// UpdateListing applies the writable subset of updates. Only the owner or an admin may edit.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, actor entity.Actor, listingID string, updates map[string]interface{}) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !listing.IsOwnedBy(actor.UserID) {
		return nil, entity.ErrUnauthorized
	}

	filtered := FilterListingUpdates(updates, actor.IsAdmin())
	if err := validateListingUpdates(filtered); err != nil {
		return nil, err
	}
	if len(filtered) == 0 {
		return listing, nil
	}

	_, hasLat := filtered["lat"]
	_, hasLng := filtered["lng"]
	if !hasLat && !hasLng {
		location, locChanged := filtered["location"].(string)
		country, countryChanged := filtered["country"].(string)
		if locChanged || countryChanged {
			if !locChanged {
				location = listing.Location
			}
			if !countryChanged {
				country = listing.Country
			}
			if p := uc.geocode(ctx, location, country); p != nil {
				filtered["lat"], filtered["lng"] = p.Lat, p.Lng
			}
		}
	}

	updated, err := uc.listingRepo.UpdateListing(ctx, listingID, filtered)
	if err != nil {
		uc.logger.Errorf("failed to update listing %s: %v", listingID, err)
		return nil, err
	}
	if uc.listingCache != nil {
		_ = uc.listingCache.InvalidateListing(ctx, listingID)
		_ = uc.listingCache.InvalidateListingPages(ctx)
	}
	return updated, nil
}

// DeleteListing authorizes the actor and hands the removal to the cascade manager.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, actor entity.Actor, listingID string) (*entity.CascadeResult, error) {
	listing, err := uc.listingRepo.GetListingByID(ctx, listingID)
	switch {
	case err == nil:
		if !actor.IsAdmin() && !listing.IsOwnedBy(actor.UserID) {
			return nil, entity.ErrUnauthorized
		}
	case errors.Is(err, entity.ErrNotFound) && actor.IsAdmin():
		// admins may re-run a cascade to clean up after a partial failure
	default:
		return nil, err
	}

	result, err := uc.cascade.DeleteListing(ctx, listingID)
	metrics.ObserveCascade("delete_listing", result)
	if err != nil {
		uc.logger.Errorf("cascade delete of listing %s incomplete: %v", listingID, err)
		return result, err
	}
	uc.logger.Infof("listing deleted: id=%s by=%s reviews=%d reservations=%d",
		listingID, actor.UserID, result.ReviewsDeleted, result.ReservationsDeleted)
	return result, nil
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", entity.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateListing(l *entity.Listing) error {
	if n := utf8.RuneCountInString(l.Title); n < 3 || n > 100 {
		return invalidInput("title must be between 3 and 100 characters")
	}
	if utf8.RuneCountInString(l.Description) < 10 {
		return invalidInput("description must be at least 10 characters")
	}
	if l.Location == "" || l.Country == "" {
		return invalidInput("location and country are required")
	}
	if l.Price < 0 || l.CleaningFee < 0 {
		return invalidInput("price and cleaning fee cannot be negative")
	}
	if l.ServiceFeePct < 0 || l.ServiceFeePct > 100 {
		return invalidInput("service fee percent must be between 0 and 100")
	}
	if l.Guests < 1 {
		return invalidInput("a listing must host at least one guest")
	}
	if l.Lat < -90 || l.Lat > 90 || l.Lng < -180 || l.Lng > 180 {
		return invalidInput("coordinates out of range")
	}
	if !slices.Contains(entity.ListingCategories, l.Category) {
		return invalidInput("unknown category %q", l.Category)
	}
	return nil
}

// validateListingUpdates checks the values of an already filtered update set.
func validateListingUpdates(updates map[string]interface{}) error {
	for k, v := range updates {
		var bad bool
		switch k {
		case "title":
			s, ok := v.(string)
			n := utf8.RuneCountInString(s)
			bad = !ok || n < 3 || n > 100
		case "description":
			s, ok := v.(string)
			bad = !ok || utf8.RuneCountInString(s) < 10
		case "location", "country":
			s, ok := v.(string)
			bad = !ok || strings.TrimSpace(s) == ""
		case "price", "cleaning_fee":
			n, ok := v.(int64)
			bad = !ok || n < 0
		case "service_fee_pct":
			f, ok := v.(float64)
			bad = !ok || f < 0 || f > 100
		case "guests":
			n, ok := v.(int)
			bad = !ok || n < 1
		case "lat":
			f, ok := v.(float64)
			bad = !ok || f < -90 || f > 90
		case "lng":
			f, ok := v.(float64)
			bad = !ok || f < -180 || f > 180
		case "category":
			s, ok := v.(string)
			bad = !ok || !slices.Contains(entity.ListingCategories, s)
		case "is_verified":
			_, ok := v.(bool)
			bad = !ok
		}
		if bad {
			return invalidInput("invalid value for %s", k)
		}
	}
	return nil
}
