package handlers

import (
	"log/slog"
	"strings"
	"time"

	"github.com/farellandr/fyyur-trivia/internal/helpers"
	"github.com/farellandr/fyyur-trivia/internal/middleware"
	"github.com/farellandr/fyyur-trivia/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// now is swapped out by tests that need a fixed past/upcoming boundary.
var now = time.Now

type listing struct {
	ID               uint
	Name             string
	NumUpcomingShows int64
}

type showCount struct {
	OwnerID uint
	Total   int64
}

// upcomingShowCounts counts future shows grouped by column (venue_id or artist_id).
func upcomingShowCounts(gormDB *gorm.DB, column string) (map[uint]int64, error) {
	var rows []showCount
	err := gormDB.Model(&models.Show{}).
		Select(column+" AS owner_id, COUNT(*) AS total").
		Where("start_time > ?", now().UTC()).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.OwnerID] = row.Total
	}
	return counts, nil
}

// searchByName does a case-insensitive substring match on the name column of
// model and attaches upcoming show counts.
func searchByName(gormDB *gorm.DB, model interface{}, showColumn, term string) ([]listing, error) {
	var rows []listing
	err := gormDB.Model(model).
		Select("id", "name").
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(term))+"%").
		Order("name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts, err := upcomingShowCounts(gormDB, showColumn)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].NumUpcomingShows = counts[rows[i].ID]
	}
	return rows, nil
}

func homeData(gormDB *gorm.DB) gin.H {
	var venues []models.Venue
	var artists []models.Artist
	if err := gormDB.Order("created_at DESC").Limit(10).Find(&venues).Error; err != nil {
		slog.Error("failed to load recent venues", "error", err)
	}
	if err := gormDB.Order("created_at DESC").Limit(10).Find(&artists).Error; err != nil {
		slog.Error("failed to load recent artists", "error", err)
	}
	return gin.H{
		"recent_venues":  venues,
		"recent_artists": artists,
	}
}

func Home(c *gin.Context) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RenderError(c, 500)
		return
	}
	helpers.Render(c, 200, "home.html", homeData(gormDB))
}

// attachImage stores an uploaded "image" file, points link at it and returns
// the stored path ("" when no file was sent). It reports false, with a flash
// queued, when the upload is rejected.
func attachImage(c *gin.Context, kind string, link *string) (string, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", true
	}

	config, ok := middleware.GetUploadConfig(c)
	if !ok {
		helpers.Flash(c, "Image uploads are not configured.")
		return "", false
	}

	path, err := helpers.UploadFile(c, fileHeader, kind, config)
	if err != nil {
		helpers.Flash(c, err.Error())
		return "", false
	}
	*link = path
	return path, true
}

// settleUpload removes the image that lost out after a save: the replaced one
// when the save succeeded, the freshly uploaded one when it failed.
func settleUpload(c *gin.Context, saveErr error, previous, current, uploaded string) {
	if saveErr != nil {
		removeUpload(c, uploaded)
		return
	}
	if previous != current {
		removeUpload(c, previous)
	}
}

func removeUpload(c *gin.Context, link string) {
	config, ok := middleware.GetUploadConfig(c)
	if !ok || link == "" {
		return
	}
	if err := helpers.DeleteUpload(link, config); err != nil {
		slog.Warn("failed to delete upload", "path", link, "error", err)
	}
}

func checkbox(value string) bool {
	return value == "y"
}

func checkboxValue(checked bool) string {
	if checked {
		return "y"
	}
	return ""
}

func flashFormErrors(c *gin.Context, err error) {
	for _, message := range helpers.FormErrors(err) {
		helpers.Flash(c, message)
	}
}
