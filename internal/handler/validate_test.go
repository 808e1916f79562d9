package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidISBN(t *testing.T) {
	assert.True(t, ValidISBN("0306406152"))
	assert.True(t, ValidISBN("9780306406157"))

	assert.False(t, ValidISBN(""))
	assert.False(t, ValidISBN("030640615"))      // 9 digits
	assert.False(t, ValidISBN("97803064061579")) // 14 digits
	assert.False(t, ValidISBN("0-306-40615-2"))  // hyphenated
	assert.False(t, ValidISBN("030640615X"))     // letters
}

func fieldsOf(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func validBookInput() BookInput {
	return BookInput{
		Title:       "The Go Programming Language",
		Author:      "Alan Donovan",
		ISBN:        "9780134190440",
		Category:    "Technology",
		TotalCopies: 3,
		Location:    "A-12",
	}
}

func TestValidateBookInputAcceptsValidPayload(t *testing.T) {
	in := validBookInput()
	assert.Empty(t, ValidateBookInput(&in))
}

func TestValidateBookInputCollectsAllViolations(t *testing.T) {
	in := BookInput{}
	fields := fieldsOf(ValidateBookInput(&in))

	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "author")
	assert.Contains(t, fields, "isbn")
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "totalCopies")
	assert.Contains(t, fields, "location")
}

func TestValidateBookInputLengthLimits(t *testing.T) {
	in := validBookInput()
	in.Title = strings.Repeat("x", 101)
	in.Author = strings.Repeat("y", 51)
	in.Description = strings.Repeat("z", 501)

	fields := fieldsOf(ValidateBookInput(&in))
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "author")
	assert.Contains(t, fields, "description")
}

func TestValidateBookInputPublicationYearRange(t *testing.T) {
	in := validBookInput()

	y := uint16(1799)
	in.PublicationYear = &y
	assert.Contains(t, fieldsOf(ValidateBookInput(&in)), "publicationYear")

	y = uint16(time.Now().UTC().Year() + 1)
	assert.Contains(t, fieldsOf(ValidateBookInput(&in)), "publicationYear")

	y = 1984
	assert.Empty(t, ValidateBookInput(&in))
}

func TestValidateBookInputCopyCounters(t *testing.T) {
	in := validBookInput()
	in.TotalCopies = 0
	assert.Contains(t, fieldsOf(ValidateBookInput(&in)), "totalCopies")

	in = validBookInput()
	neg := -1
	in.AvailableCopies = &neg
	assert.Contains(t, fieldsOf(ValidateBookInput(&in)), "availableCopies")

	in = validBookInput()
	over := in.TotalCopies + 1
	in.AvailableCopies = &over
	assert.Contains(t, fieldsOf(ValidateBookInput(&in)), "availableCopies")

	in = validBookInput()
	exact := in.TotalCopies
	in.AvailableCopies = &exact
	assert.Empty(t, ValidateBookInput(&in))
}

func TestValidateBookInputTrimsWhitespace(t *testing.T) {
	in := validBookInput()
	in.Title = "  Dune  "
	in.ISBN = " 9780134190440 "

	assert.Empty(t, ValidateBookInput(&in))
	assert.Equal(t, "Dune", in.Title)
	assert.Equal(t, "9780134190440", in.ISBN)
}

func TestValidateRegisterInput(t *testing.T) {
	in := RegisterInput{Name: "Ada", Email: "ADA@Example.com", Password: "secret1"}
	assert.Empty(t, ValidateRegisterInput(&in))
	assert.Equal(t, "ada@example.com", in.Email, "email is normalized")

	in = RegisterInput{Name: "", Email: "not-an-email", Password: "123"}
	fields := fieldsOf(ValidateRegisterInput(&in))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestValidDueDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, ValidDueDate(now.Add(time.Hour), now))
	assert.False(t, ValidDueDate(now, now))
	assert.False(t, ValidDueDate(now.Add(-time.Hour), now))
}

// The borrow payload uses the client's camelCase keys; a request with
// bookId/dueDate must bind without falling into validation errors.
func TestBorrowInputBindsCamelCaseKeys(t *testing.T) {
	body := `{"bookId": 5, "dueDate": "2099-01-02T00:00:00Z", "notes": "handle with care"}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/borrows", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var in BorrowInput
	require.NoError(t, c.Bind(&in))

	assert.Equal(t, uint64(5), in.BookID)
	assert.Equal(t, time.Date(2099, 1, 2, 0, 0, 0, 0, time.UTC), in.DueDate.UTC())
	assert.Equal(t, "handle with care", in.Notes)
	assert.Empty(t, ValidateBorrowInput(&in, time.Now().UTC()))
}

func TestValidateBorrowInput(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Missing dueDate is rejected, never defaulted.
	in := BorrowInput{BookID: 5}
	fields := fieldsOf(ValidateBorrowInput(&in, now))
	assert.Contains(t, fields, "dueDate")

	in = BorrowInput{DueDate: now.Add(24 * time.Hour)}
	assert.Contains(t, fieldsOf(ValidateBorrowInput(&in, now)), "bookId")

	in = BorrowInput{BookID: 5, DueDate: now.Add(-time.Hour)}
	assert.Contains(t, fieldsOf(ValidateBorrowInput(&in, now)), "dueDate")

	in = BorrowInput{BookID: 5, DueDate: now.Add(14 * 24 * time.Hour)}
	assert.Empty(t, ValidateBorrowInput(&in, now))
}
