package availability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanhub/marketplace-api/internal/cache"
	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/models"
)

func validSaveInput() SaveCalendarSettingsInput {
	return SaveCalendarSettingsInput{
		ServiceID:         7,
		Timezone:          "UTC",
		SchedulingEnabled: true,
		SessionDuration:   60,
		MinNoticeAmount:   24,
		MinNoticeUnit:     "hours",
		MaxAdvanceAmount:  30,
		MaxAdvanceUnit:    "days",
		BufferAmount:      0,
		BufferUnit:        "minutes",
		Days: []DayInput{
			{
				DayOfWeek: "Monday",
				Enabled:   true,
				Blocks:    []BlockInput{{StartTime: "09:00", EndTime: "12:00"}},
				Slots:     []SlotInput{{SlotTime: "09:00", Enabled: true}, {SlotTime: "10:00", Enabled: true}},
			},
		},
	}
}

func newSaveUC(repo *fakeRepo) *SaveCalendarSettings {
	return NewSaveCalendarSettings(repo, cache.New(nil, 0), zerolog.Nop())
}

func TestSaveCalendarSettings(t *testing.T) {
	repo := &fakeRepo{service: &models.Service{ID: 7, CreativeID: 42}}
	uc := newSaveUC(repo)

	settings, err := uc.Execute(context.Background(), 42, validSaveInput())
	require.NoError(t, err)

	require.NotNil(t, repo.replaced)
	assert.True(t, settings.Active)
	require.Len(t, settings.WeeklySchedules, 1)
	assert.Len(t, settings.WeeklySchedules[0].TimeBlocks, 1)
	assert.Len(t, settings.WeeklySchedules[0].TimeSlots, 2)
}

func TestSaveCalendarSettingsOwnership(t *testing.T) {
	repo := &fakeRepo{service: &models.Service{ID: 7, CreativeID: 42}}
	uc := newSaveUC(repo)

	_, err := uc.Execute(context.Background(), 99, validSaveInput())
	assert.True(t, httperr.IsBusiness(err, "not_your_service"))

	_, err = newSaveUC(&fakeRepo{}).Execute(context.Background(), 42, validSaveInput())
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestSaveCalendarSettingsUnitValidation(t *testing.T) {
	repo := &fakeRepo{service: &models.Service{ID: 7, CreativeID: 42}}
	uc := newSaveUC(repo)

	in := validSaveInput()
	in.MinNoticeUnit = "fortnights"
	_, err := uc.Execute(context.Background(), 42, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_notice_unit"))

	in = validSaveInput()
	in.MaxAdvanceUnit = "years"
	_, err = uc.Execute(context.Background(), 42, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_advance_unit"))

	in = validSaveInput()
	in.BufferUnit = "weeks"
	_, err = uc.Execute(context.Background(), 42, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_buffer_unit"))
}

func TestSaveCalendarSettingsDropsInvertedBlocks(t *testing.T) {
	repo := &fakeRepo{service: &models.Service{ID: 7, CreativeID: 42}}
	uc := newSaveUC(repo)

	in := validSaveInput()
	in.Days[0].Blocks = []BlockInput{
		{StartTime: "09:00", EndTime: "12:00"},
		{StartTime: "14:00", EndTime: "14:00"},
		{StartTime: "18:00", EndTime: "08:00"},
	}

	settings, err := uc.Execute(context.Background(), 42, in)
	require.NoError(t, err)

	require.Len(t, settings.WeeklySchedules, 1)
	blocks := settings.WeeklySchedules[0].TimeBlocks
	require.Len(t, blocks, 1)
	assert.Equal(t, "09:00", blocks[0].StartTime)
	assert.Equal(t, "12:00", blocks[0].EndTime)
}

func TestSaveCalendarSettingsConvertsToUTC(t *testing.T) {
	repo := &fakeRepo{service: &models.Service{ID: 7, CreativeID: 42}}
	uc := newSaveUC(repo)

	in := validSaveInput()
	in.Timezone = "Etc/GMT+3" // UTC-3, so 09:00 local is 12:00 UTC
	in.Days[0].Slots = []SlotInput{{SlotTime: "09:00", Enabled: true}}
	in.Days[0].Blocks = nil

	settings, err := uc.Execute(context.Background(), 42, in)
	require.NoError(t, err)

	require.Len(t, settings.WeeklySchedules[0].TimeSlots, 1)
	assert.Equal(t, "12:00", settings.WeeklySchedules[0].TimeSlots[0].SlotTime)
}
