package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"ise-marketing/propdesk/internal/common"
	"ise-marketing/propdesk/internal/constants"
	"ise-marketing/propdesk/internal/contracts"
	"ise-marketing/propdesk/internal/db/repositories"
	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/metrics"
	"ise-marketing/propdesk/internal/models/dtos"
	gormModels "ise-marketing/propdesk/internal/models/gorm"
	"ise-marketing/propdesk/internal/revenue"
)

// ErrInvalidID is returned for ids that are not UUIDs
var ErrInvalidID = errors.New("invalid property id")

// ValidationError describes a rejected field in a create/update request
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PropertyStore is the persistence the service needs; PropertyRepositoryGORM satisfies it.
type PropertyStore interface {
	List(ctx context.Context, search string) ([]gormModels.Property, error)
	GetByID(ctx context.Context, id string) (*gormModels.Property, error)
	FindByName(ctx context.Context, name string) (*gormModels.Property, error)
	Create(ctx context.Context, prop *gormModels.Property) error
	CreateBatch(ctx context.Context, props []gormModels.Property) error
	Update(ctx context.Context, prop *gormModels.Property) error
	Delete(ctx context.Context, id string) error
}

// PropertyService owns property CRUD, listing filters and the cached list snapshot.
type PropertyService struct {
	repo     PropertyStore
	cache    common.CacheInterface
	cacheTTL time.Duration
	metrics  *metrics.MetricsRegistry
	now      func() time.Time

	// generation counts invalidations so a load that raced a write is dropped
	generation atomic.Uint64
}

func NewPropertyService(repo PropertyStore, cache common.CacheInterface, cacheTTL time.Duration, metricsReg *metrics.MetricsRegistry) *PropertyService {
	if cacheTTL <= 0 {
		cacheTTL = constants.DefaultCacheTTL
	}
	return &PropertyService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metricsReg,
		now:      time.Now,
	}
}

// All returns every property ordered by name, served from cache when warm. A
// snapshot loaded across an Invalidate is returned but not kept.
func (s *PropertyService) All(ctx context.Context) ([]dtos.Property, error) {
	key := string(constants.CacheKeyPropertyList)
	gen := s.generation.Load()
	props, hit, err := common.GetOrLoad(s.cache, key, s.cacheTTL, func() ([]dtos.Property, error) {
		rows, err := s.repo.List(ctx, "")
		if err != nil {
			return nil, err
		}
		return ToPropertyDTOs(rows), nil
	})
	if err != nil {
		return nil, err
	}
	if !hit && s.cache != nil && s.generation.Load() != gen {
		s.cache.Delete(key)
	}

	if s.metrics != nil && s.cache != nil {
		if hit {
			s.metrics.CacheHitsTotal.WithLabelValues(key).Inc()
		} else {
			s.metrics.CacheMissesTotal.WithLabelValues(key).Inc()
		}
	}
	return props, nil
}

// List applies the search and status filters. With a cache configured the
// search runs over the cached snapshot; without one it is pushed down to SQL.
func (s *PropertyService) List(ctx context.Context, q dtos.PropertyListQuery) ([]dtos.Property, error) {
	filter, err := contracts.ParseFilter(q.Status)
	if err != nil {
		return nil, &ValidationError{Field: "status", Message: err.Error()}
	}
	search := strings.TrimSpace(q.Search)

	var props []dtos.Property
	if search != "" && s.cache == nil {
		rows, err := s.repo.List(ctx, search)
		if err != nil {
			return nil, err
		}
		props = ToPropertyDTOs(rows)
		search = ""
	} else {
		props, err = s.All(ctx)
		if err != nil {
			return nil, err
		}
	}

	if filter == contracts.FilterAll && search == "" {
		return props, nil
	}
	now := s.now()
	out := make([]dtos.Property, 0, len(props))
	for _, p := range props {
		if filter.Matches(p, now) && contracts.MatchesSearch(p, search) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (*dtos.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToPropertyDTO(*row)
	return &out, nil
}

// PropertyStatus is a property's contract status and term progress
type PropertyStatus struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Status   contracts.Status   `json:"status"`
	Progress contracts.Progress `json:"progress"`
}

func (s *PropertyService) Status(ctx context.Context, id string) (*PropertyStatus, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &PropertyStatus{
		ID:       p.ID,
		Name:     p.Name,
		Status:   contracts.StatusOf(*p, now),
		Progress: contracts.ProgressOf(*p, now),
	}, nil
}

// Portfolio summarises active and expired contract value across all properties.
func (s *PropertyService) Portfolio(ctx context.Context) (*contracts.PortfolioSummary, error) {
	props, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	summary := contracts.Summarize(props, s.now())
	return &summary, nil
}

func (s *PropertyService) Create(ctx context.Context, req dtos.PropertyRequest) (*dtos.Property, error) {
	prop := gormModels.Property{
		Logo:                 gormModels.DefaultPropertyLogo,
		DealTermLength:       1,
		ProhibitedCategories: []string{},
		SchemaVersion:        gormModels.CurrentSchemaVersion,
	}
	if err := applyRequest(&prop, req); err != nil {
		return nil, err
	}
	if prop.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}
	if err := s.ensureUniqueName(ctx, prop.Name, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &prop); err != nil {
		return nil, err
	}
	s.Invalidate()

	logging.Info("Property created", "property_id", prop.ID, "name", prop.Name)
	out := ToPropertyDTO(prop)
	return &out, nil
}

// Update merges the provided fields into the stored property. Contacts are
// replaced wholesale; an omitted contacts list clears them.
func (s *PropertyService) Update(ctx context.Context, id string, req dtos.PropertyRequest) (*dtos.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	prop, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Contacts == nil {
		req.Contacts = []dtos.Contact{}
	}
	if err := applyRequest(prop, req); err != nil {
		return nil, err
	}
	if prop.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}
	if err := s.ensureUniqueName(ctx, prop.Name, prop.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, prop); err != nil {
		return nil, err
	}
	s.Invalidate()

	logging.Info("Property updated", "property_id", prop.ID, "name", prop.Name)
	out := ToPropertyDTO(*prop)
	return &out, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Invalidate()

	logging.Info("Property deleted", "property_id", id)
	return nil
}

// Invalidate drops the cached list snapshot. Every write calls it.
func (s *PropertyService) Invalidate() {
	s.generation.Add(1)
	if s.cache != nil {
		s.cache.Delete(string(constants.CacheKeyPropertyList))
	}
}

func (s *PropertyService) ensureUniqueName(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return repositories.ErrDuplicateName
	}
	return nil
}

// applyRequest copies the non-nil request fields onto prop and validates them.
func applyRequest(prop *gormModels.Property, req dtos.PropertyRequest) error {
	setString := func(dst *string, src *string, trim bool) {
		if src == nil {
			return
		}
		if trim {
			*dst = strings.TrimSpace(*src)
			return
		}
		*dst = *src
	}

	setString(&prop.Name, req.Name, true)
	setString(&prop.SunsetName, req.SunsetName, true)
	setString(&prop.Logo, req.Logo, false)
	setString(&prop.CoverPhoto, req.CoverPhoto, false)
	setString(&prop.Contract, req.Contract, true)
	setString(&prop.Commission, req.Commission, false)
	setString(&prop.CarveOuts, req.CarveOuts, false)
	setString(&prop.FinancialTerms, req.FinancialTerms, false)
	setString(&prop.CharitableContribution, req.CharitableContribution, false)
	setString(&prop.TEReimbursements, req.TEReimbursements, false)
	setString(&prop.MMRHolder, req.MMRHolder, false)

	if prop.Logo == "" {
		prop.Logo = gormModels.DefaultPropertyLogo
	}
	if req.ContractStartDate.Set {
		prop.ContractStartDate = req.ContractStartDate.TimePtr()
	}
	if req.ContractExpiration.Set {
		prop.ContractExpiration = req.ContractExpiration.TimePtr()
	}
	if req.ProjectedAnnualDeal != nil {
		prop.ProjectedAnnualDeal = *req.ProjectedAnnualDeal
	}
	if req.ActualAnnualDeal != nil {
		prop.ActualAnnualDeal = *req.ActualAnnualDeal
	}
	if req.DealTermLength != nil {
		if *req.DealTermLength < 1 || *req.DealTermLength > revenue.MaxTermLength {
			return &ValidationError{Field: "dealTermLength", Message: fmt.Sprintf("must be between 1 and %d", revenue.MaxTermLength)}
		}
		prop.DealTermLength = *req.DealTermLength
	}
	if req.ProhibitedCategories != nil {
		prop.ProhibitedCategories = req.ProhibitedCategories
	}

	if req.Contacts != nil {
		contacts := make([]gormModels.PropertyContact, 0, len(req.Contacts))
		for i, c := range req.Contacts {
			name := strings.TrimSpace(c.Name)
			if name == "" {
				return &ValidationError{Field: fmt.Sprintf("contacts[%d].name", i), Message: "is required"}
			}
			category := gormModels.ContactCategory(strings.ToLower(strings.TrimSpace(c.Category)))
			if !category.Valid() {
				return &ValidationError{
					Field:   fmt.Sprintf("contacts[%d].category", i),
					Message: fmt.Sprintf("must be one of alumni, campus, mmr, athletics (got %q)", c.Category),
				}
			}
			contacts = append(contacts, gormModels.PropertyContact{
				PropertyID: prop.ID,
				Name:       name,
				Position:   strings.TrimSpace(c.Position),
				Email:      strings.TrimSpace(c.Email),
				Category:   category,
			})
		}
		prop.Contacts = contacts
	}

	// Legacy shapes sent by old clients are folded in immediately
	prop.LegacyAlumniContacts = append(prop.LegacyAlumniContacts, req.AlumniContacts...)
	prop.LegacyCampusContacts = append(prop.LegacyCampusContacts, req.CampusContacts...)
	prop.LegacyMMRContacts = append(prop.LegacyMMRContacts, req.MMRContacts...)
	prop.LegacyAthleticsContacts = append(prop.LegacyAthleticsContacts, req.AthleticsContacts...)
	if req.EndDate.Valid() {
		prop.LegacyEndDate = req.EndDate.TimePtr()
	}
	FoldLegacy(prop)

	return nil
}
