package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/farellandr/fyyur-trivia/internal/helpers"
	"github.com/farellandr/fyyur-trivia/internal/middleware"
	"github.com/farellandr/fyyur-trivia/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ArtistForm struct {
	Name               string   `form:"name" binding:"required,max=120"`
	City               string   `form:"city" binding:"required,max=120"`
	State              string   `form:"state" binding:"required,usstate"`
	Phone              string   `form:"phone" binding:"max=120"`
	Genres             []string `form:"genres" binding:"required,dive,genre"`
	ImageLink          string   `form:"image_link" binding:"omitempty,uri,max=500"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" binding:"omitempty,url,max=120"`
	SeekingVenue       string   `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description"`
}

func (form ArtistForm) apply(artist *models.Artist) {
	artist.Name = form.Name
	artist.City = form.City
	artist.State = form.State
	artist.Phone = form.Phone
	artist.Genres = models.Genres(form.Genres)
	artist.ImageLink = form.ImageLink
	artist.FacebookLink = form.FacebookLink
	artist.WebsiteLink = form.WebsiteLink
	artist.SeekingVenue = checkbox(form.SeekingVenue)
	artist.SeekingDescription = form.SeekingDescription
}

func artistFormFrom(artist models.Artist) ArtistForm {
	return ArtistForm{
		Name:               artist.Name,
		City:               artist.City,
		State:              artist.State,
		Phone:              artist.Phone,
		Genres:             artist.Genres,
		ImageLink:          artist.ImageLink,
		FacebookLink:       artist.FacebookLink,
		WebsiteLink:        artist.WebsiteLink,
		SeekingVenue:       checkboxValue(artist.SeekingVenue),
		SeekingDescription: artist.SeekingDescription,
	}
}

// ListArtists lists every artist by name.
func ListArtists(c *gin.Context) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	var artists []listing
	if err := gormDB.Model(&models.Artist{}).Select("id", "name").Order("name").Scan(&artists).Error; err != nil {
		_ = c.Error(err)
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	helpers.Render(c, http.StatusOK, "artists.html", gin.H{"artists": artists})
}

func SearchArtists(c *gin.Context) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	term := c.PostForm("search_term")
	results, err := searchByName(gormDB, &models.Artist{}, "artist_id", term)
	if err != nil {
		_ = c.Error(err)
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	helpers.Render(c, http.StatusOK, "search.html", gin.H{
		"kind":        "artists",
		"search_term": term,
		"count":       len(results),
		"results":     results,
	})
}

func ShowArtist(c *gin.Context) {
	artist, ok := findArtist(c, true)
	if !ok {
		return
	}

	past, upcoming := models.SplitShows(artist.Shows, now())
	helpers.Render(c, http.StatusOK, "show_artist.html", gin.H{
		"artist":         artist,
		"past_shows":     past,
		"upcoming_shows": upcoming,
	})
}

func CreateArtistForm(c *gin.Context) {
	renderArtistForm(c, http.StatusOK, "/artists/create", ArtistForm{})
}

func CreateArtistSubmission(c *gin.Context) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	var form ArtistForm
	if err := c.ShouldBind(&form); err != nil {
		flashFormErrors(c, err)
		renderArtistForm(c, http.StatusBadRequest, "/artists/create", form)
		return
	}

	var artist models.Artist
	form.apply(&artist)
	uploaded, ok := attachImage(c, "artists", &artist.ImageLink)
	if !ok {
		renderArtistForm(c, http.StatusBadRequest, "/artists/create", form)
		return
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&artist).Error
	})
	settleUpload(c, err, "", artist.ImageLink, uploaded)
	if err != nil {
		slog.Error("failed to create artist", "name", form.Name, "error", err)
		helpers.Flash(c, fmt.Sprintf("An error occurred. Artist %s could not be listed.", form.Name))
	} else {
		helpers.Flash(c, fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
	}

	helpers.Render(c, http.StatusOK, "home.html", homeData(gormDB))
}

func EditArtistForm(c *gin.Context) {
	artist, ok := findArtist(c, false)
	if !ok {
		return
	}
	renderArtistForm(c, http.StatusOK, fmt.Sprintf("/artists/%d/edit", artist.ID), artistFormFrom(*artist))
}

func EditArtistSubmission(c *gin.Context) {
	artist, ok := findArtist(c, false)
	if !ok {
		return
	}
	action := fmt.Sprintf("/artists/%d/edit", artist.ID)

	var form ArtistForm
	if err := c.ShouldBind(&form); err != nil {
		flashFormErrors(c, err)
		renderArtistForm(c, http.StatusBadRequest, action, form)
		return
	}

	previous := artist.ImageLink
	form.apply(artist)
	uploaded, ok := attachImage(c, "artists", &artist.ImageLink)
	if !ok {
		renderArtistForm(c, http.StatusBadRequest, action, form)
		return
	}

	gormDB, _ := middleware.GetDB(c)
	err := gormDB.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Shows").Save(artist).Error
	})
	settleUpload(c, err, previous, artist.ImageLink, uploaded)
	if err != nil {
		slog.Error("failed to update artist", "id", artist.ID, "error", err)
		helpers.Flash(c, fmt.Sprintf("An error occurred. Artist %s could not be updated.", artist.Name))
	} else {
		helpers.Flash(c, fmt.Sprintf("Artist %s was successfully updated!", artist.Name))
	}

	helpers.Redirect(c, fmt.Sprintf("/artists/%d", artist.ID))
}

// RemoveArtist handles the HTML form post and renders the home page.
func RemoveArtist(c *gin.Context) {
	artist, ok := findArtist(c, false)
	if !ok {
		return
	}

	gormDB, _ := middleware.GetDB(c)
	if err := deleteArtist(gormDB, artist); err != nil {
		slog.Error("failed to delete artist", "id", artist.ID, "error", err)
		helpers.Flash(c, fmt.Sprintf("An error occurred. Artist %s could not be removed.", artist.Name))
	} else {
		removeUpload(c, artist.ImageLink)
		helpers.Flash(c, fmt.Sprintf("Artist %s was successfully removed!", artist.Name))
	}

	helpers.Render(c, http.StatusOK, "home.html", homeData(gormDB))
}

// DeleteArtist is the JSON variant used by the delete button.
func DeleteArtist(c *gin.Context) {
	artistID, ok := helpers.ParamID(c, "id")
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound)
		return
	}

	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	var artist models.Artist
	if err := gormDB.First(&artist, artistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound)
			return
		}
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	if err := deleteArtist(gormDB, &artist); err != nil {
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusUnprocessableEntity)
		return
	}
	removeUpload(c, artist.ImageLink)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": artist.ID,
	})
}

func deleteArtist(gormDB *gorm.DB, artist *models.Artist) error {
	return gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artist_id = ?", artist.ID).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		return tx.Delete(artist).Error
	})
}

// findArtist loads the artist named by :id, rendering the error page itself
// when it cannot.
func findArtist(c *gin.Context, withShows bool) (*models.Artist, bool) {
	artistID, ok := helpers.ParamID(c, "id")
	if !ok {
		helpers.RenderError(c, http.StatusNotFound)
		return nil, false
	}

	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RenderError(c, http.StatusInternalServerError)
		return nil, false
	}

	query := gormDB
	if withShows {
		query = query.Preload("Shows", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time")
		}).Preload("Shows.Venue")
	}

	var artist models.Artist
	if err := query.First(&artist, artistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RenderError(c, http.StatusNotFound)
			return nil, false
		}
		_ = c.Error(err)
		helpers.RenderError(c, http.StatusInternalServerError)
		return nil, false
	}
	return &artist, true
}

func renderArtistForm(c *gin.Context, code int, action string, form ArtistForm) {
	title := "List a new artist"
	if action != "/artists/create" {
		title = "Edit artist " + form.Name
	}
	helpers.Render(c, code, "artist_form.html", gin.H{
		"title":  title,
		"action": action,
		"form":   form,
	})
}
