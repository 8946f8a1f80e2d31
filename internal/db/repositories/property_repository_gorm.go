package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gormModels "ise-marketing/propdesk/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrDuplicateName    = errors.New("a property with this name already exists")
)

// PropertyRepositoryGORM handles the properties and property_contacts tables
type PropertyRepositoryGORM struct {
	db *gorm.DB
}

func NewPropertyRepositoryGORM(db *gorm.DB) *PropertyRepositoryGORM {
	return &PropertyRepositoryGORM{db: db}
}

func preloadContacts(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

// List returns properties ordered by name. A non-empty search narrows the
// result to names containing it, case-insensitively.
func (r *PropertyRepositoryGORM) List(ctx context.Context, search string) ([]gormModels.Property, error) {
	var props []gormModels.Property

	q := r.db.WithContext(ctx).
		Preload("Contacts", preloadContacts).
		Order("name ASC")

	if term := strings.TrimSpace(search); term != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(term))+"%")
	}

	if err := q.Find(&props).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return props, nil
}

// GetByID retrieves a property with its contacts
func (r *PropertyRepositoryGORM) GetByID(ctx context.Context, id string) (*gormModels.Property, error) {
	var prop gormModels.Property

	err := r.db.WithContext(ctx).
		Preload("Contacts", preloadContacts).
		Where("id = ?", id).
		First(&prop).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}
	return &prop, nil
}

// FindByName matches case-insensitively and returns nil, nil when no property
// has that name
func (r *PropertyRepositoryGORM) FindByName(ctx context.Context, name string) (*gormModels.Property, error) {
	var prop gormModels.Property

	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&prop).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch property by name: %w", err)
	}
	return &prop, nil
}

// Create inserts the property and its contacts
func (r *PropertyRepositoryGORM) Create(ctx context.Context, prop *gormModels.Property) error {
	numberContacts(prop)

	if err := r.db.WithContext(ctx).Create(prop).Error; err != nil {
		return translateWriteError("create property", err)
	}
	return nil
}

// CreateBatch inserts properties in one transaction, stopping at the first failure
func (r *PropertyRepositoryGORM) CreateBatch(ctx context.Context, props []gormModels.Property) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range props {
			numberContacts(&props[i])
			if err := tx.Create(&props[i]).Error; err != nil {
				return translateWriteError(fmt.Sprintf("import property %q", props[i].Name), err)
			}
		}
		return nil
	})
}

// Update saves every column of prop and replaces its contacts wholesale
func (r *PropertyRepositoryGORM) Update(ctx context.Context, prop *gormModels.Property) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&gormModels.Property{}).Where("id = ?", prop.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check property: %w", err)
		}
		if count == 0 {
			return ErrPropertyNotFound
		}

		if err := tx.Omit(clause.Associations).Save(prop).Error; err != nil {
			return translateWriteError("update property", err)
		}

		if err := tx.Where("property_id = ?", prop.ID).Delete(&gormModels.PropertyContact{}).Error; err != nil {
			return fmt.Errorf("failed to clear contacts: %w", err)
		}

		numberContacts(prop)
		for i := range prop.Contacts {
			prop.Contacts[i].ID = ""
			prop.Contacts[i].PropertyID = prop.ID
		}
		if len(prop.Contacts) > 0 {
			if err := tx.Create(&prop.Contacts).Error; err != nil {
				return fmt.Errorf("failed to save contacts: %w", err)
			}
		}
		return nil
	})
}

// Delete removes the property and its contacts
func (r *PropertyRepositoryGORM) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&gormModels.PropertyContact{}).Error; err != nil {
			return fmt.Errorf("failed to delete contacts: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&gormModels.Property{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete property: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrPropertyNotFound
		}
		return nil
	})
}

func numberContacts(prop *gormModels.Property) {
	for i := range prop.Contacts {
		prop.Contacts[i].SortOrder = i
	}
}

func translateWriteError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
