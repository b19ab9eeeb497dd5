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

func newLifecycleMock(t *testing.T) (*LifecycleService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewLifecycleService(db,
		repositories.NewLeadRepository(db),
		repositories.NewLeadStatusHistoryRepository(db))
	return svc, mock
}

var leadColumns = []string{
	"id", "name", "email", "phone", "event_id", "package_id",
	"number_of_travelers", "travel_date", "status", "notes",
	"created_at", "updated_at",
}

func leadRows(id int, status models.LeadStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(leadColumns).
		AddRow(id, "Asel Nurlanovna", "asel@example.com", "+77011234567",
			2, nil, 2, now.AddDate(0, 2, 0), string(status), "", now, now)
}

func TestTransitionAppendsHistoryInOneTx(t *testing.T) {
	svc, mock := newLifecycleMock(t)

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(1).
		WillReturnRows(leadRows(1, models.LeadStatusContacted))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE leads SET status").
		WithArgs(string(models.LeadStatusQuoteSent), sqlmock.AnyArg(), 1, string(models.LeadStatusContacted)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO lead_status_history").
		WithArgs(1, string(models.LeadStatusContacted), string(models.LeadStatusQuoteSent),
			"user:7", "called back", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	lead, err := svc.Transition(1, models.LeadStatusQuoteSent, "called back", "user:7", false)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusQuoteSent, lead.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	svc, mock := newLifecycleMock(t)

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(1).
		WillReturnRows(leadRows(1, models.LeadStatusNew))

	_, err := svc.Transition(1, models.LeadStatusClosedWon, "", "user:7", false)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "from New to Closed Won")
	// No transaction was ever opened.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionPrivilegedBypassesTable(t *testing.T) {
	svc, mock := newLifecycleMock(t)

	// New -> Quote Sent is not in the table; the quote workflow forces it.
	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(1).
		WillReturnRows(leadRows(1, models.LeadStatusNew))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE leads SET status").
		WithArgs(string(models.LeadStatusQuoteSent), sqlmock.AnyArg(), 1, string(models.LeadStatusNew)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO lead_status_history").
		WithArgs(1, string(models.LeadStatusNew), string(models.LeadStatusQuoteSent),
			models.ChangedBySystem, "Quote generated: 3", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	lead, err := svc.Transition(1, models.LeadStatusQuoteSent, "Quote generated: 3", "", true)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusQuoteSent, lead.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionLostRaceRollsBack(t *testing.T) {
	svc, mock := newLifecycleMock(t)

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(1).
		WillReturnRows(leadRows(1, models.LeadStatusContacted))
	mock.ExpectBegin()
	// A concurrent transition already moved the lead; the swap hits no rows.
	mock.ExpectExec("UPDATE leads SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Transition(1, models.LeadStatusQuoteSent, "", "user:7", false)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionUnknownLead(t *testing.T) {
	svc, mock := newLifecycleMock(t)

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(leadColumns))

	_, err := svc.Transition(42, models.LeadStatusContacted, "", "user:7", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionUnknownStatus(t *testing.T) {
	svc, _ := newLifecycleMock(t)

	_, err := svc.Transition(1, "Bogus", "", "user:7", false)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestCreateWithSeedWritesAuditEntry(t *testing.T) {
	svc, mock := newLifecycleMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO leads").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery("INSERT INTO lead_status_history").
		WithArgs(5, string(models.LeadStatusNew), string(models.LeadStatusNew),
			models.ChangedBySystem, "Lead created", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	lead := &models.Lead{
		Name:              "Asel Nurlanovna",
		Email:             "asel@example.com",
		Phone:             "+77011234567",
		EventID:           2,
		NumberOfTravelers: 2,
		TravelDate:        time.Now().AddDate(0, 2, 0),
		// The incoming payload cannot pick its own status.
		Status: models.LeadStatusClosedWon,
	}
	require.NoError(t, svc.CreateWithSeed(lead))
	assert.Equal(t, 5, lead.ID)
	assert.Equal(t, models.LeadStatusNew, lead.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascadesHistory(t *testing.T) {
	svc, mock := newLifecycleMock(t)

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id").
		WithArgs(1).
		WillReturnRows(leadRows(1, models.LeadStatusClosedLost))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM lead_status_history").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM leads").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
