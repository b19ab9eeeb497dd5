package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sportstravel/internal/models"
)

func TestCanTransitionTable(t *testing.T) {
	allowed := []struct {
		from, to models.LeadStatus
	}{
		{models.LeadStatusNew, models.LeadStatusContacted},
		{models.LeadStatusContacted, models.LeadStatusQuoteSent},
		{models.LeadStatusContacted, models.LeadStatusClosedLost},
		{models.LeadStatusQuoteSent, models.LeadStatusInterested},
		{models.LeadStatusQuoteSent, models.LeadStatusClosedLost},
		{models.LeadStatusInterested, models.LeadStatusClosedWon},
		{models.LeadStatusInterested, models.LeadStatusClosedLost},
	}

	isAllowed := func(from, to models.LeadStatus) bool {
		for _, p := range allowed {
			if p.from == from && p.to == to {
				return true
			}
		}
		return false
	}

	all := []models.LeadStatus{
		models.LeadStatusNew, models.LeadStatusContacted, models.LeadStatusQuoteSent,
		models.LeadStatusInterested, models.LeadStatusClosedWon, models.LeadStatusClosedLost,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equalf(t, isAllowed(from, to), CanTransition(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestCanTransitionTerminalStates(t *testing.T) {
	for _, terminal := range []models.LeadStatus{models.LeadStatusClosedWon, models.LeadStatusClosedLost} {
		assert.True(t, terminal.IsTerminal())
		for to := range LeadTransitions {
			assert.Falsef(t, CanTransition(terminal, to), "terminal %s must not reach %s", terminal, to)
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("Bogus", models.LeadStatusContacted))
	assert.False(t, CanTransition(models.LeadStatusNew, "Bogus"))
	assert.False(t, CanTransition(models.LeadStatusNew, models.LeadStatusNew))
}
