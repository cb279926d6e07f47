package helpers

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageOffset(t *testing.T) {
	tests := []struct {
		page   int
		offset int
		ok     bool
	}{
		{page: 1, offset: 0, ok: true},
		{page: 2, offset: 10, ok: true},
		{page: 7, offset: 60, ok: true},
		{page: 0, ok: false},
		{page: -3, ok: false},
	}

	for _, tt := range tests {
		offset, ok := PageOffset(tt.page, QuestionsPerPage)
		assert.Equal(t, tt.ok, ok, "page %d", tt.page)
		assert.Equal(t, tt.offset, offset, "page %d", tt.page)
	}
}

func TestHTTPStatusText(t *testing.T) {
	assert.Equal(t, "resource not found", HTTPStatusText(http.StatusNotFound))
	assert.Equal(t, "unprocessable", HTTPStatusText(http.StatusUnprocessableEntity))
	assert.Equal(t, "bad request", HTTPStatusText(http.StatusBadRequest))
	assert.Equal(t, "method not allowed", HTTPStatusText(http.StatusMethodNotAllowed))
	assert.Equal(t, "internal server error", HTTPStatusText(http.StatusInternalServerError))
	assert.Equal(t, "conflict", HTTPStatusText(http.StatusConflict))
}

func TestFormatDatetime(t *testing.T) {
	ts := time.Date(2019, time.May, 21, 21, 30, 0, 0, time.UTC)

	assert.Equal(t, "Tuesday May, 21, 2019 at 9:30PM", FormatDatetime(ts, "full"))
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", FormatDatetime(ts, "medium"))
	assert.Equal(t, "2019-05-21", FormatDatetime(ts, "2006-01-02"))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Name", humanize("Name"))
	assert.Equal(t, "Facebook link", humanize("FacebookLink"))
	assert.Equal(t, "Artist id", humanize("ArtistID"))
	assert.Equal(t, "Seeking description", humanize("SeekingDescription"))
}

type sampleForm struct {
	Name    string   `binding:"required"`
	State   string   `binding:"required,usstate"`
	Website string   `binding:"omitempty,url"`
	Genres  []string `binding:"required,dive,genre"`
}

func TestFormErrors(t *testing.T) {
	require.NoError(t, RegisterFormValidators())
	require.NoError(t, RegisterFormValidators())

	err := binding.Validator.ValidateStruct(&sampleForm{
		State:   "ZZ",
		Website: "nope",
		Genres:  []string{"Jazz", "Polka"},
	})
	require.Error(t, err)

	messages := FormErrors(err)
	assert.Contains(t, messages, "Name is required.")
	assert.Contains(t, messages, "State must be a valid US state code.")
	assert.Contains(t, messages, "Website must be a valid URL.")
	assert.Contains(t, messages, `"Polka" is not a valid genre.`)

	valid := binding.Validator.ValidateStruct(&sampleForm{Name: "x", State: "CA", Genres: []string{"Jazz"}})
	assert.NoError(t, valid)

	assert.Equal(t, []string{"Invalid form submission."}, FormErrors(assert.AnError))
}

func TestGenerateToken(t *testing.T) {
	_, err := GenerateToken("", "tester", time.Hour)
	assert.Error(t, err)

	signed, err := GenerateToken("secret", "tester", time.Hour)
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signed, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "tester", claims.Subject)

	expired, err := GenerateToken("secret", "tester", -time.Minute)
	require.NoError(t, err)
	_, err = jwt.Parse(expired, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestDeleteUpload(t *testing.T) {
	config := ImageUploadConfig(t.TempDir())
	dir := filepath.Join(config.UploadBasePath, "venues")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	target := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	assert.NoError(t, DeleteUpload("https://example.com/a.png", config))
	assert.NoError(t, DeleteUpload("/uploads/../secret", config))
	assert.FileExists(t, target)

	require.NoError(t, DeleteUpload("/uploads/venues/a.png", config))
	assert.NoFileExists(t, target)
}
