package models

import (
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Venue{}, &Artist{}, &Show{}, &Category{}, &Question{}))
	return db
}

func TestGenresValue(t *testing.T) {
	value, err := Genres{"Jazz", "Rock n Roll"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"Jazz","Rock n Roll"}`, value)

	var genres Genres
	require.NoError(t, genres.Scan(`{Jazz,"Rock n Roll",R&B}`))
	assert.Equal(t, Genres{"Jazz", "Rock n Roll", "R&B"}, genres)

	assert.True(t, genres.Contains("R&B"))
	assert.False(t, genres.Contains("Pop"))
	assert.Equal(t, "Jazz, Rock n Roll, R&B", genres.String())
}

func TestGenresColumnSchema(t *testing.T) {
	for _, model := range []interface{}{&Venue{}, &Artist{}, &Show{}} {
		parsed, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)
		if field := parsed.LookUpField("Genres"); field != nil {
			assert.Equal(t, schema.DataType("text"), field.DataType)
		}
	}
}

func TestGenresRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	venue := Venue{Name: " The Musical Hop ", City: "San Francisco", State: "CA", Address: "1015 Folsom Street", Genres: Genres{"Jazz", "Reggae", "Swing"}}
	require.NoError(t, db.Create(&venue).Error)

	var loaded Venue
	require.NoError(t, db.First(&loaded, venue.ID).Error)
	assert.Equal(t, "The Musical Hop", loaded.Name)
	assert.Equal(t, Genres{"Jazz", "Reggae", "Swing"}, loaded.Genres)
}

func TestSplitShows(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	shows := []Show{
		{ID: 1, StartTime: now.Add(-48 * time.Hour)},
		{ID: 2, StartTime: now},
		{ID: 3, StartTime: now.Add(time.Hour)},
		{ID: 4, StartTime: now.Add(-time.Hour)},
		{ID: 5, StartTime: now.Add(72 * time.Hour)},
	}

	past, upcoming := SplitShows(shows, now)

	var pastIDs, upcomingIDs []uint
	for _, show := range past {
		pastIDs = append(pastIDs, show.ID)
	}
	for _, show := range upcoming {
		upcomingIDs = append(upcomingIDs, show.ID)
	}
	assert.Equal(t, []uint{1, 2, 4}, pastIDs)
	assert.Equal(t, []uint{3, 5}, upcomingIDs)

	past, upcoming = SplitShows(nil, now)
	assert.Empty(t, past)
	assert.Empty(t, upcoming)
}

func TestCategoryMap(t *testing.T) {
	categories := []Category{{ID: 1, Type: "Science"}, {ID: 5, Type: "Entertainment"}}

	assert.Equal(t, map[string]string{"1": "Science", "5": "Entertainment"}, CategoryMap(categories))
	assert.Empty(t, CategoryMap(nil))
}

func TestQuestionBeforeSave(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&Category{ID: 1, Type: "Science"}).Error)

	question := Question{Question: "  What is H2O? ", Answer: " Water ", CategoryID: 1, Difficulty: 1}
	require.NoError(t, db.Create(&question).Error)
	assert.Equal(t, "What is H2O?", question.Question)
	assert.Equal(t, "Water", question.Answer)

	err := db.Create(&Question{Question: "Why?", Answer: "   ", CategoryID: 1, Difficulty: 1}).Error
	assert.ErrorIs(t, err, ErrIncompleteQuestion)

	var count int64
	db.Model(&Question{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
