package professionalRepo

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"homepro/models"
	"homepro/services/availability"
)

func ptr(f float64) *float64 { return &f }

type stubRepo struct {
	pros    map[string]*models.Professional
	gets    int
	updates int
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*models.Professional, error) {
	s.gets++
	p, ok := s.pros[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubRepo) Create(_ context.Context, pro *models.Professional) error {
	s.pros[pro.ID] = pro
	return nil
}

func (s *stubRepo) Update(_ context.Context, id string, patch Patch) (*models.Professional, error) {
	s.updates++
	p, ok := s.pros[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.BufferTimeMinutes != nil {
		p.BufferTimeMinutes = *patch.BufferTimeMinutes
	}
	cp := *p
	return &cp, nil
}

func (s *stubRepo) FindNear(context.Context, NearQuery) ([]models.Professional, error) {
	return nil, nil
}

func (s *stubRepo) EnsureIndexes(context.Context) error { return nil }

func newCached(t *testing.T, inner ProfessionalRepository) (*CachedProfessionalRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCachedProfessionalRepo(inner, client, time.Minute), mr
}

func TestCachedProfessionalRepo_CacheAside(t *testing.T) {
	ctx := context.Background()
	inner := &stubRepo{pros: map[string]*models.Professional{
		"pro-1": {ID: "pro-1", DisplayName: "Amina", BufferTimeMinutes: 10, FCMToken: "token-1"},
	}}
	repo, mr := newCached(t, inner)

	first, err := repo.GetByID(ctx, "pro-1")
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, "pro-1")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.gets)
	assert.Equal(t, first, second)
	assert.Equal(t, "token-1", second.FCMToken)
	assert.True(t, mr.Exists(profileCachePrefix+"pro-1"))
	assert.Equal(t, time.Minute, mr.TTL(profileCachePrefix+"pro-1"))
}

func TestCachedProfessionalRepo_UpdateEvicts(t *testing.T) {
	ctx := context.Background()
	inner := &stubRepo{pros: map[string]*models.Professional{"pro-1": {ID: "pro-1"}}}
	repo, mr := newCached(t, inner)

	_, err := repo.GetByID(ctx, "pro-1")
	require.NoError(t, err)
	require.True(t, mr.Exists(profileCachePrefix+"pro-1"))

	buffer := 20
	updated, err := repo.Update(ctx, "pro-1", Patch{BufferTimeMinutes: &buffer})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.BufferTimeMinutes)
	assert.False(t, mr.Exists(profileCachePrefix+"pro-1"))

	again, err := repo.GetByID(ctx, "pro-1")
	require.NoError(t, err)
	assert.Equal(t, 20, again.BufferTimeMinutes)
	assert.Equal(t, 2, inner.gets)
}

func TestCachedProfessionalRepo_NotFoundIsNotCached(t *testing.T) {
	repo, mr := newCached(t, &stubRepo{pros: map[string]*models.Professional{}})

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, mr.Exists(profileCachePrefix+"missing"))
}

func TestCachedProfessionalRepo_CorruptEntryFallsThrough(t *testing.T) {
	inner := &stubRepo{pros: map[string]*models.Professional{"pro-1": {ID: "pro-1", DisplayName: "Amina"}}}
	repo, mr := newCached(t, inner)
	require.NoError(t, mr.Set(profileCachePrefix+"pro-1", "{not json"))

	pro, err := repo.GetByID(context.Background(), "pro-1")
	require.NoError(t, err)
	assert.Equal(t, "Amina", pro.DisplayName)
	assert.Equal(t, 1, inner.gets)
}

func TestDocumentRoundTrip(t *testing.T) {
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC)
	pro := &models.Professional{
		ID:          "pro-1",
		DisplayName: "Amina",
		Timezone:    "Africa/Nairobi",
		WeeklySchedule: models.WeeklySchedule{
			"monday": {Enabled: true, StartTime: "09:00", EndTime: "17:00"},
		},
		BlockedDates:      []time.Time{time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)},
		VacationMode:      true,
		VacationStartDate: &start,
		VacationEndDate:   &end,
		BufferTimeMinutes: 15,
		ServiceAreas: []models.ServiceArea{
			{Label: "CBD", Latitude: ptr(-1.28), Longitude: ptr(36.82), ServiceRadiusKm: 10},
			{Label: "incomplete"},
		},
	}

	raw, err := bson.Marshal(toDocument(pro))
	require.NoError(t, err)
	var doc professionalDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))

	require.NotNil(t, doc.Coverage)
	assert.Equal(t, "MultiPoint", doc.Coverage.Type)
	assert.Equal(t, [][]float64{{36.82, -1.28}}, doc.Coverage.Coordinates)

	got := doc.toModel(time.UTC)
	assert.Equal(t, pro.WeeklySchedule, got.WeeklySchedule)
	assert.Equal(t, pro.BlockedDates, got.BlockedDates)
	assert.True(t, start.Equal(*got.VacationStartDate))
	assert.True(t, end.Equal(*got.VacationEndDate))
	assert.Equal(t, pro.ServiceAreas, got.ServiceAreas)
	assert.Equal(t, 15, got.BufferTimeMinutes)
}

func TestDocument_LegacyStringDates(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"id":                "pro-2",
		"vacationMode":      true,
		"vacationStartDate": "2024-07-01",
		"vacationEndDate":   bson.M{"seconds": int64(1720915200), "nanoseconds": 0},
		"blockedDates":      bson.A{"2024-12-25", nil},
		"bufferTimeMinutes": -5,
	})
	require.NoError(t, err)

	var doc professionalDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	got := doc.toModel(time.UTC)

	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), *got.VacationStartDate)
	assert.Equal(t, time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC), *got.VacationEndDate)
	assert.Equal(t, []time.Time{time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)}, got.BlockedDates)
	assert.Zero(t, got.BufferTimeMinutes)
	assert.Nil(t, doc.Coverage)
}

func TestDocument_TimestampDatesReadInProfessionalZone(t *testing.T) {
	nairobi, err := time.LoadLocation("Africa/Nairobi")
	require.NoError(t, err)
	at := func(day int) int64 { return time.Date(2024, 6, day, 0, 0, 0, 0, nairobi).Unix() }

	tests := []struct {
		name     string
		timezone string
		fallback *time.Location
	}{
		{"zone on document", "Africa/Nairobi", time.UTC},
		{"zone from fallback", "", nairobi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.M{
				"id":                "pro-3",
				"timezone":          tt.timezone,
				"vacationMode":      true,
				"vacationStartDate": bson.M{"seconds": at(10), "nanoseconds": 0},
				"vacationEndDate":   primitive.Timestamp{T: uint32(at(12))},
				"blockedDates":      bson.A{bson.M{"seconds": at(5), "nanoseconds": 0}},
			})
			require.NoError(t, err)
			var doc professionalDocument
			require.NoError(t, bson.Unmarshal(raw, &doc))
			got := doc.toModel(tt.fallback)

			day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, nairobi) }
			assert.True(t, availability.IsDateBlocked(day(5), got.BlockedDates))
			assert.False(t, availability.IsDateBlocked(day(4), got.BlockedDates))
			assert.False(t, availability.IsVacationDate(day(9), got.VacationMode, got.VacationStartDate, got.VacationEndDate))
			assert.True(t, availability.IsVacationDate(day(10), got.VacationMode, got.VacationStartDate, got.VacationEndDate))
			assert.True(t, availability.IsVacationDate(day(12), got.VacationMode, got.VacationStartDate, got.VacationEndDate))
			assert.False(t, availability.IsVacationDate(day(13), got.VacationMode, got.VacationStartDate, got.VacationEndDate))
		})
	}
}

func TestPatchUpdate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	off := false
	update := patchUpdate(Patch{
		VacationMode: &off,
		Coverage:     &Coverage{ServiceRadiusKm: 5},
	}, now)

	set := update["$set"].(bson.M)
	unset := update["$unset"].(bson.M)

	assert.Equal(t, now, set["updatedAt"])
	assert.Equal(t, false, set["vacationMode"])
	assert.Equal(t, 5.0, set["serviceRadius"])
	assert.Equal(t, []serviceAreaDocument{}, set["serviceAreas"])
	assert.NotContains(t, set, "weeklySchedule")
	for _, key := range []string{"vacationStartDate", "vacationEndDate", "lat", "lon", "coverage"} {
		assert.Contains(t, unset, key)
	}
}

func TestNearFilter(t *testing.T) {
	filter := nearFilter(NearQuery{Latitude: -1.28, Longitude: 36.82, MaxDistanceKm: 30, ServiceType: "plumbing"})

	near := filter["coverage"].(bson.M)["$nearSphere"].(bson.M)
	assert.Equal(t, 30000.0, near["$maxDistance"])
	assert.Equal(t, []float64{36.82, -1.28}, near["$geometry"].(models.GeoPoint).Coordinates)
	assert.Equal(t, "plumbing", filter["serviceType"])
}
