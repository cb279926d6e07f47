package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/farellandr/fyyur-trivia/internal/helpers"
	"github.com/farellandr/fyyur-trivia/internal/middleware"
	"github.com/farellandr/fyyur-trivia/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var showTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

var errUnknownListing = errors.New("venue or artist does not exist")

type ShowForm struct {
	ArtistID  uint   `form:"artist_id" binding:"required"`
	VenueID   uint   `form:"venue_id" binding:"required"`
	StartTime string `form:"start_time" binding:"required"`
}

func parseShowTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var err error
	for _, layout := range showTimeLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func ListShows(c *gin.Context) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	var shows []models.Show
	if err := gormDB.Preload("Venue").Preload("Artist").Order("start_time").Find(&shows).Error; err != nil {
		_ = c.Error(err)
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	helpers.Render(c, http.StatusOK, "shows.html", gin.H{"shows": shows})
}

func CreateShowForm(c *gin.Context) {
	renderShowForm(c, http.StatusOK, ShowForm{StartTime: now().UTC().Format("2006-01-02 15:04:05")})
}

func CreateShowSubmission(c *gin.Context) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	var form ShowForm
	if err := c.ShouldBind(&form); err != nil {
		flashFormErrors(c, err)
		renderShowForm(c, http.StatusBadRequest, form)
		return
	}

	startTime, err := parseShowTime(form.StartTime)
	if err != nil {
		helpers.Flash(c, "Start time must look like 2006-01-02 15:04:05.")
		renderShowForm(c, http.StatusBadRequest, form)
		return
	}

	show := models.Show{
		VenueID:   form.VenueID,
		ArtistID:  form.ArtistID,
		StartTime: startTime,
	}

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		var venueCount, artistCount int64
		if err := tx.Model(&models.Venue{}).Where("id = ?", show.VenueID).Count(&venueCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Artist{}).Where("id = ?", show.ArtistID).Count(&artistCount).Error; err != nil {
			return err
		}
		if venueCount == 0 || artistCount == 0 {
			return errUnknownListing
		}
		return tx.Omit("Venue", "Artist").Create(&show).Error
	})
	if err != nil {
		slog.Error("failed to create show", "venue_id", show.VenueID, "artist_id", show.ArtistID, "error", err)
		helpers.Flash(c, "An error occurred. Show could not be listed.")
	} else {
		helpers.Flash(c, "Show was successfully listed!")
	}

	helpers.Render(c, http.StatusOK, "home.html", homeData(gormDB))
}

func renderShowForm(c *gin.Context, code int, form ShowForm) {
	data := gin.H{"form": form}
	if gormDB, exists := middleware.GetDB(c); exists {
		var venues []listing
		var artists []listing
		if err := gormDB.Model(&models.Venue{}).Select("id", "name").Order("name").Scan(&venues).Error; err != nil {
			slog.Error("failed to load venues for show form", "error", err)
		}
		if err := gormDB.Model(&models.Artist{}).Select("id", "name").Order("name").Scan(&artists).Error; err != nil {
			slog.Error("failed to load artists for show form", "error", err)
		}
		data["venues"] = venues
		data["artists"] = artists
	}
	helpers.Render(c, code, "show_form.html", data)
}
