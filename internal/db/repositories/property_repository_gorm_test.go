package repositories

import (
	"context"
	"testing"
	"time"

	"ise-marketing/propdesk/internal/db"
	gormModels "ise-marketing/propdesk/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Setup test database
func setupTestStore(t *testing.T) *db.Store {
	t.Helper()
	orm, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	store, err := db.FromGorm(orm)
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func ptrTime(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func TestPropertyRepository_CreateAndGet(t *testing.T) {
	store := setupTestStore(t)
	repo := NewPropertyRepositoryGORM(store.ORM)
	ctx := context.Background()

	prop := &gormModels.Property{
		Name:                 "State University",
		Commission:           "10%",
		ActualAnnualDeal:     250000,
		DealTermLength:       3,
		ContractStartDate:    ptrTime("2023-07-01"),
		ProhibitedCategories: []string{"alcohol", "gambling"},
		Contacts: []gormModels.PropertyContact{
			{Name: "Pat AD", Category: gormModels.ContactCategoryAthletics},
			{Name: "Sam Alumni", Category: gormModels.ContactCategoryAlumni, Email: "sam@example.edu"},
		},
	}
	require.NoError(t, repo.Create(ctx, prop))
	require.NotEmpty(t, prop.ID)

	got, err := repo.GetByID(ctx, prop.ID)
	require.NoError(t, err)
	assert.Equal(t, "State University", got.Name)
	assert.Equal(t, []string{"alcohol", "gambling"}, got.ProhibitedCategories)
	require.Len(t, got.Contacts, 2)
	assert.Equal(t, "Pat AD", got.Contacts[0].Name)
	assert.Equal(t, "Sam Alumni", got.Contacts[1].Name)
	assert.Equal(t, gormModels.CurrentSchemaVersion, got.SchemaVersion)
	assert.Equal(t, 2023, got.ContractStartDate.Year())
}

func TestPropertyRepository_GetByID_NotFound(t *testing.T) {
	store := setupTestStore(t)
	repo := NewPropertyRepositoryGORM(store.ORM)

	_, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestPropertyRepository_DuplicateName(t *testing.T) {
	store := setupTestStore(t)
	repo := NewPropertyRepositoryGORM(store.ORM)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &gormModels.Property{Name: "Tech"}))
	err := repo.Create(ctx, &gormModels.Property{Name: "Tech"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// the name index ignores case
	err = repo.Create(ctx, &gormModels.Property{Name: "TECH"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	found, err := repo.FindByName(ctx, "tech")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Tech", found.Name)

	missing, err := repo.FindByName(ctx, "Tech U")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPropertyRepository_ListSearchAndOrder(t *testing.T) {
	store := setupTestStore(t)
	repo := NewPropertyRepositoryGORM(store.ORM)
	ctx := context.Background()

	for _, name := range []string{"Western Tech", "Alpha State", "Georgia Tech", "100% Club"} {
		require.NoError(t, repo.Create(ctx, &gormModels.Property{Name: name}))
	}

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	names := []string{}
	for _, p := range all {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"100% Club", "Alpha State", "Georgia Tech", "Western Tech"}, names)

	tech, err := repo.List(ctx, "TECH")
	require.NoError(t, err)
	assert.Len(t, tech, 2)

	pct, err := repo.List(ctx, "%")
	require.NoError(t, err)
	require.Len(t, pct, 1)
	assert.Equal(t, "100% Club", pct[0].Name)
}

func TestPropertyRepository_UpdateReplacesContacts(t *testing.T) {
	store := setupTestStore(t)
	repo := NewPropertyRepositoryGORM(store.ORM)
	ctx := context.Background()

	prop := &gormModels.Property{
		Name:     "Coastal",
		Contacts: []gormModels.PropertyContact{{Name: "Old", Category: gormModels.ContactCategoryCampus}},
	}
	require.NoError(t, repo.Create(ctx, prop))

	prop.Commission = "12%"
	prop.Contacts = []gormModels.PropertyContact{
		{Name: "New A", Category: gormModels.ContactCategoryMMR},
		{Name: "New B", Category: gormModels.ContactCategoryAlumni},
	}
	require.NoError(t, repo.Update(ctx, prop))

	got, err := repo.GetByID(ctx, prop.ID)
	require.NoError(t, err)
	assert.Equal(t, "12%", got.Commission)
	require.Len(t, got.Contacts, 2)
	assert.Equal(t, "New A", got.Contacts[0].Name)

	var count int64
	require.NoError(t, store.ORM.Model(&gormModels.PropertyContact{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestPropertyRepository_UpdateMissing(t *testing.T) {
	store := setupTestStore(t)
	repo := NewPropertyRepositoryGORM(store.ORM)

	err := repo.Update(context.Background(), &gormModels.Property{ID: "missing", Name: "Ghost"})
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestPropertyRepository_Delete(t *testing.T) {
	store := setupTestStore(t)
	repo := NewPropertyRepositoryGORM(store.ORM)
	ctx := context.Background()

	prop := &gormModels.Property{
		Name:     "Gone",
		Contacts: []gormModels.PropertyContact{{Name: "C", Category: gormModels.ContactCategoryCampus}},
	}
	require.NoError(t, repo.Create(ctx, prop))

	require.NoError(t, repo.Delete(ctx, prop.ID))
	assert.ErrorIs(t, repo.Delete(ctx, prop.ID), ErrPropertyNotFound)

	var count int64
	require.NoError(t, store.ORM.Model(&gormModels.PropertyContact{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPropertyRepository_CreateBatchRollsBack(t *testing.T) {
	store := setupTestStore(t)
	repo := NewPropertyRepositoryGORM(store.ORM)
	ctx := context.Background()

	err := repo.CreateBatch(ctx, []gormModels.Property{{Name: "One"}, {Name: "One"}})
	assert.ErrorIs(t, err, ErrDuplicateName)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAuditRepository_PropertyAudit(t *testing.T) {
	store := setupTestStore(t)
	repo := NewPropertyRepositoryGORM(store.ORM)
	audit := NewAuditRepository(store.SQL)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &gormModels.Property{Name: "Dated", Commission: "10%", ContractStartDate: ptrTime("2022-01-01"), ContractExpiration: ptrTime("2025-01-01")}))
	require.NoError(t, repo.Create(ctx, &gormModels.Property{Name: "Legacy", LegacyEndDate: ptrTime("2021-06-01"), SchemaVersion: gormModels.LegacySchemaVersion}))
	require.NoError(t, repo.Create(ctx, &gormModels.Property{Name: "Both", Commission: "5%", ContractStartDate: ptrTime("2020-01-01"), LegacyEndDate: ptrTime("2020-01-01")}))

	got, err := audit.PropertyAudit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.WithStartDate)
	assert.Equal(t, 1, got.WithExpiration)
	assert.Equal(t, 1, got.NeedingMigration)
	assert.Equal(t, 1, got.WithBothDates)
	assert.Equal(t, 1, got.LegacySchema)
	assert.Equal(t, 1, got.MissingCommission)

	undated, err := audit.UndatedPropertyNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Legacy"}, undated)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
