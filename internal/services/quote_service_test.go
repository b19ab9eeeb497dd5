package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportstravel/internal/models"
	"sportstravel/internal/repositories"
)

type stubEmail struct {
	err   error
	calls int
}

func (s *stubEmail) SendQuoteEmail(lead *models.Lead, quote *models.Quote, event *models.Event, pkg *models.Package) error {
	s.calls++
	return s.err
}

func newQuoteMock(t *testing.T, email *stubEmail) (*QuoteService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	leads := repositories.NewLeadRepository(db)
	history := repositories.NewLeadStatusHistoryRepository(db)
	svc := NewQuoteService(
		repositories.NewQuoteRepository(db),
		leads,
		repositories.NewEventRepository(db),
		repositories.NewPackageRepository(db),
		NewLifecycleService(db, leads, history),
		email,
	)
	return svc, mock
}

func eventRows(id int, startDate time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "description", "location", "start_date", "end_date",
		"image_url", "category", "featured", "created_at", "updated_at",
	}).AddRow(id, "Monaco Grand Prix", "", "Monaco", startDate, startDate.AddDate(0, 0, 2),
		"", string(models.CategoryF1), true, now, now)
}

func packageRows(id, eventID int, basePrice float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "event_id", "name", "description", "base_price", "inclusions",
		"tier", "duration", "accommodation_type", "max_travelers", "created_at", "updated_at",
	}).AddRow(id, eventID, "Premium Paddock", "", basePrice, "{Flights,Hotel,Tickets}",
		string(models.TierPremium), 4, "5-star hotel", 8, now, now)
}

func quoteRows(id, leadID int, status models.QuoteStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "lead_id", "event_id", "package_id", "base_price", "adjustments",
		"final_price", "number_of_travelers", "travel_date", "valid_until", "status", "created_at",
	}).AddRow(id, leadID, 2, 3, 1000.0, []byte(`{}`), 1200.0, 4,
		now.AddDate(0, 2, 0), now.AddDate(0, 1, 0), string(status), now)
}

// expectGenerateFlow wires the full happy path: lead 1 (Contacted), event 2
// starting Saturday 2027-06-12, package 3 at 1000, quote persisted as 7.
func expectGenerateFlow(mock sqlmock.Sqlmock) {
	eventStart := time.Date(2027, time.June, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(1).
		WillReturnRows(leadRows(1, models.LeadStatusContacted))
	mock.ExpectQuery("SELECT (.+) FROM events WHERE id").
		WithArgs(2).
		WillReturnRows(eventRows(2, eventStart))
	mock.ExpectQuery("SELECT (.+) FROM packages WHERE id").
		WithArgs(3).
		WillReturnRows(packageRows(3, 2, 1000))
	mock.ExpectQuery("INSERT INTO quotes").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec("UPDATE leads SET package_id").
		WithArgs(3, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Privileged lifecycle move to Quote Sent.
	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(1).
		WillReturnRows(leadRows(1, models.LeadStatusContacted))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE leads SET status").
		WithArgs(string(models.LeadStatusQuoteSent), sqlmock.AnyArg(), 1, string(models.LeadStatusContacted)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO lead_status_history").
		WithArgs(1, string(models.LeadStatusContacted), string(models.LeadStatusQuoteSent),
			models.ChangedBySystem, "Quote generated: 7", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20))
	mock.ExpectCommit()
}

func TestGenerateQuotePricesAndAdvancesLead(t *testing.T) {
	email := &stubEmail{}
	svc, mock := newQuoteMock(t, email)
	expectGenerateFlow(mock)

	res, err := svc.Generate(GenerateQuoteInput{
		LeadID:            1,
		PackageID:         3,
		NumberOfTravelers: 4,
		TravelDate:        time.Date(2027, time.May, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// June Saturday event, 4 travelers, 23 days out:
	// 1000 + 200 season + 80 weekend - 80 group.
	assert.Equal(t, 7, res.QuoteID)
	assert.Equal(t, 1000.0, res.BasePrice)
	assert.Equal(t, 1200.0, res.FinalPrice)
	assert.Equal(t, models.LeadStatusQuoteSent, res.LeadStatus)
	assert.Equal(t, 1, email.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateQuoteSurvivesEmailFailure(t *testing.T) {
	email := &stubEmail{err: errors.New("smtp down")}
	svc, mock := newQuoteMock(t, email)
	expectGenerateFlow(mock)

	res, err := svc.Generate(GenerateQuoteInput{
		LeadID:            1,
		PackageID:         3,
		NumberOfTravelers: 4,
		TravelDate:        time.Date(2027, time.May, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusQuoteSent, res.LeadStatus)
	assert.Equal(t, 1, email.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateQuoteLeadNotFound(t *testing.T) {
	svc, mock := newQuoteMock(t, &stubEmail{})

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(leadColumns))

	_, err := svc.Generate(GenerateQuoteInput{LeadID: 99})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateQuoteMissingPackage(t *testing.T) {
	email := &stubEmail{}
	svc, mock := newQuoteMock(t, email)

	// Lead without a pinned package and no package in the request.
	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(1).
		WillReturnRows(leadRows(1, models.LeadStatusContacted))

	_, err := svc.Generate(GenerateQuoteInput{LeadID: 1})
	assert.ErrorIs(t, err, ErrMissingData)
	assert.Zero(t, email.calls)
}

func TestAcceptQuoteClosesLeadWon(t *testing.T) {
	svc, mock := newQuoteMock(t, &stubEmail{})

	mock.ExpectQuery("SELECT (.+) FROM quotes WHERE id").
		WithArgs(7).
		WillReturnRows(quoteRows(7, 1, models.QuoteStatusSent))
	mock.ExpectExec("UPDATE quotes SET status").
		WithArgs(string(models.QuoteStatusAccepted), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(1).
		WillReturnRows(leadRows(1, models.LeadStatusInterested))
	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(1).
		WillReturnRows(leadRows(1, models.LeadStatusInterested))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE leads SET status").
		WithArgs(string(models.LeadStatusClosedWon), sqlmock.AnyArg(), 1, string(models.LeadStatusInterested)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO lead_status_history").
		WithArgs(1, string(models.LeadStatusInterested), string(models.LeadStatusClosedWon),
			models.ChangedBySystem, "Quote 7 accepted", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectCommit()

	quote, err := svc.UpdateStatus(7, models.QuoteStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusAccepted, quote.Status)
	// Price fields were never recomputed.
	assert.Equal(t, 1200.0, quote.FinalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectQuoteSkipsWonLead(t *testing.T) {
	svc, mock := newQuoteMock(t, &stubEmail{})

	mock.ExpectQuery("SELECT (.+) FROM quotes WHERE id").
		WithArgs(7).
		WillReturnRows(quoteRows(7, 1, models.QuoteStatusSent))
	mock.ExpectExec("UPDATE quotes SET status").
		WithArgs(string(models.QuoteStatusRejected), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Another quote already won this lead; rejecting a stale one must not
	// reopen or downgrade it.
	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(1).
		WillReturnRows(leadRows(1, models.LeadStatusClosedWon))

	quote, err := svc.UpdateStatus(7, models.QuoteStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusRejected, quote.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuoteStatusUnknownValue(t *testing.T) {
	svc, _ := newQuoteMock(t, &stubEmail{})

	_, err := svc.UpdateStatus(7, "Expired")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}
