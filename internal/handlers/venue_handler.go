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

type VenueForm struct {
	Name               string   `form:"name" binding:"required,max=120"`
	City               string   `form:"city" binding:"required,max=120"`
	State              string   `form:"state" binding:"required,usstate"`
	Address            string   `form:"address" binding:"required,max=120"`
	Phone              string   `form:"phone" binding:"max=120"`
	Genres             []string `form:"genres" binding:"required,dive,genre"`
	ImageLink          string   `form:"image_link" binding:"omitempty,uri,max=500"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" binding:"omitempty,url,max=120"`
	SeekingTalent      string   `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description"`
}

func (form VenueForm) apply(venue *models.Venue) {
	venue.Name = form.Name
	venue.City = form.City
	venue.State = form.State
	venue.Address = form.Address
	venue.Phone = form.Phone
	venue.Genres = models.Genres(form.Genres)
	venue.ImageLink = form.ImageLink
	venue.FacebookLink = form.FacebookLink
	venue.WebsiteLink = form.WebsiteLink
	venue.SeekingTalent = checkbox(form.SeekingTalent)
	venue.SeekingDescription = form.SeekingDescription
}

func venueFormFrom(venue models.Venue) VenueForm {
	return VenueForm{
		Name:               venue.Name,
		City:               venue.City,
		State:              venue.State,
		Address:            venue.Address,
		Phone:              venue.Phone,
		Genres:             venue.Genres,
		ImageLink:          venue.ImageLink,
		FacebookLink:       venue.FacebookLink,
		WebsiteLink:        venue.WebsiteLink,
		SeekingTalent:      checkboxValue(venue.SeekingTalent),
		SeekingDescription: venue.SeekingDescription,
	}
}

type venueArea struct {
	City   string
	State  string
	Venues []listing
}

// ListVenues groups venues by city and state.
func ListVenues(c *gin.Context) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	var venues []models.Venue
	if err := gormDB.Order("state, city, name").Find(&venues).Error; err != nil {
		_ = c.Error(err)
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	counts, err := upcomingShowCounts(gormDB, "venue_id")
	if err != nil {
		_ = c.Error(err)
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	var areas []*venueArea
	byLocation := map[string]*venueArea{}
	for _, venue := range venues {
		key := venue.City + "|" + venue.State
		area, ok := byLocation[key]
		if !ok {
			area = &venueArea{City: venue.City, State: venue.State}
			byLocation[key] = area
			areas = append(areas, area)
		}
		area.Venues = append(area.Venues, listing{
			ID:               venue.ID,
			Name:             venue.Name,
			NumUpcomingShows: counts[venue.ID],
		})
	}

	helpers.Render(c, http.StatusOK, "venues.html", gin.H{"areas": areas})
}

func SearchVenues(c *gin.Context) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	term := c.PostForm("search_term")
	results, err := searchByName(gormDB, &models.Venue{}, "venue_id", term)
	if err != nil {
		_ = c.Error(err)
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	helpers.Render(c, http.StatusOK, "search.html", gin.H{
		"kind":        "venues",
		"search_term": term,
		"count":       len(results),
		"results":     results,
	})
}

func ShowVenue(c *gin.Context) {
	venue, ok := findVenue(c, true)
	if !ok {
		return
	}

	past, upcoming := models.SplitShows(venue.Shows, now())
	helpers.Render(c, http.StatusOK, "show_venue.html", gin.H{
		"venue":          venue,
		"past_shows":     past,
		"upcoming_shows": upcoming,
	})
}

func CreateVenueForm(c *gin.Context) {
	renderVenueForm(c, http.StatusOK, "/venues/create", VenueForm{})
}

func CreateVenueSubmission(c *gin.Context) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	var form VenueForm
	if err := c.ShouldBind(&form); err != nil {
		flashFormErrors(c, err)
		renderVenueForm(c, http.StatusBadRequest, "/venues/create", form)
		return
	}

	var venue models.Venue
	form.apply(&venue)
	uploaded, ok := attachImage(c, "venues", &venue.ImageLink)
	if !ok {
		renderVenueForm(c, http.StatusBadRequest, "/venues/create", form)
		return
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&venue).Error
	})
	settleUpload(c, err, "", venue.ImageLink, uploaded)
	if err != nil {
		slog.Error("failed to create venue", "name", form.Name, "error", err)
		helpers.Flash(c, fmt.Sprintf("An error occurred. Venue %s could not be listed.", form.Name))
	} else {
		helpers.Flash(c, fmt.Sprintf("Venue %s was successfully listed!", venue.Name))
	}

	helpers.Render(c, http.StatusOK, "home.html", homeData(gormDB))
}

func EditVenueForm(c *gin.Context) {
	venue, ok := findVenue(c, false)
	if !ok {
		return
	}
	renderVenueForm(c, http.StatusOK, fmt.Sprintf("/venues/%d/edit", venue.ID), venueFormFrom(*venue))
}

func EditVenueSubmission(c *gin.Context) {
	venue, ok := findVenue(c, false)
	if !ok {
		return
	}
	action := fmt.Sprintf("/venues/%d/edit", venue.ID)

	var form VenueForm
	if err := c.ShouldBind(&form); err != nil {
		flashFormErrors(c, err)
		renderVenueForm(c, http.StatusBadRequest, action, form)
		return
	}

	previous := venue.ImageLink
	form.apply(venue)
	uploaded, ok := attachImage(c, "venues", &venue.ImageLink)
	if !ok {
		renderVenueForm(c, http.StatusBadRequest, action, form)
		return
	}

	gormDB, _ := middleware.GetDB(c)
	err := gormDB.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Shows").Save(venue).Error
	})
	settleUpload(c, err, previous, venue.ImageLink, uploaded)
	if err != nil {
		slog.Error("failed to update venue", "id", venue.ID, "error", err)
		helpers.Flash(c, fmt.Sprintf("An error occurred. Venue %s could not be updated.", venue.Name))
	} else {
		helpers.Flash(c, fmt.Sprintf("Venue %s was successfully updated!", venue.Name))
	}

	helpers.Redirect(c, fmt.Sprintf("/venues/%d", venue.ID))
}

// RemoveVenue handles the HTML form post and renders the home page.
func RemoveVenue(c *gin.Context) {
	venue, ok := findVenue(c, false)
	if !ok {
		return
	}

	gormDB, _ := middleware.GetDB(c)
	if err := deleteVenue(gormDB, venue); err != nil {
		slog.Error("failed to delete venue", "id", venue.ID, "error", err)
		helpers.Flash(c, fmt.Sprintf("An error occurred. Venue %s could not be removed.", venue.Name))
	} else {
		removeUpload(c, venue.ImageLink)
		helpers.Flash(c, fmt.Sprintf("Venue %s was successfully removed!", venue.Name))
	}

	helpers.Render(c, http.StatusOK, "home.html", homeData(gormDB))
}

// DeleteVenue is the JSON variant used by the delete button.
func DeleteVenue(c *gin.Context) {
	venueID, ok := helpers.ParamID(c, "id")
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound)
		return
	}

	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	var venue models.Venue
	if err := gormDB.First(&venue, venueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound)
			return
		}
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	if err := deleteVenue(gormDB, &venue); err != nil {
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusUnprocessableEntity)
		return
	}
	removeUpload(c, venue.ImageLink)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": venue.ID,
	})
}

func deleteVenue(gormDB *gorm.DB, venue *models.Venue) error {
	return gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venue_id = ?", venue.ID).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		return tx.Delete(venue).Error
	})
}

// findVenue loads the venue named by :id, rendering the error page itself
// when it cannot.
func findVenue(c *gin.Context, withShows bool) (*models.Venue, bool) {
	venueID, ok := helpers.ParamID(c, "id")
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
		}).Preload("Shows.Artist")
	}

	var venue models.Venue
	if err := query.First(&venue, venueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RenderError(c, http.StatusNotFound)
			return nil, false
		}
		_ = c.Error(err)
		helpers.RenderError(c, http.StatusInternalServerError)
		return nil, false
	}
	return &venue, true
}

func renderVenueForm(c *gin.Context, code int, action string, form VenueForm) {
	title := "List a new venue"
	if action != "/venues/create" {
		title = "Edit venue " + form.Name
	}
	helpers.Render(c, code, "venue_form.html", gin.H{
		"title":  title,
		"action": action,
		"form":   form,
	})
}
