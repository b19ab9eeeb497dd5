package services

import (
	"sportstravel/internal/models"
)

// LeadTransitions is the exhaustive set of allowed funnel moves. Closed Won
// and Closed Lost are terminal. Quote Sent is additionally reachable through
// the privileged quote-generation path, which bypasses this table.
var LeadTransitions = map[models.LeadStatus]map[models.LeadStatus]bool{
	models.LeadStatusNew: {
		models.LeadStatusContacted: true,
	},
	models.LeadStatusContacted: {
		models.LeadStatusQuoteSent:  true,
		models.LeadStatusClosedLost: true,
	},
	models.LeadStatusQuoteSent: {
		models.LeadStatusInterested: true,
		models.LeadStatusClosedLost: true,
	},
	models.LeadStatusInterested: {
		models.LeadStatusClosedWon:  true,
		models.LeadStatusClosedLost: true,
	},
	models.LeadStatusClosedWon:  {},
	models.LeadStatusClosedLost: {},
}

// CanTransition reports whether the table allows current -> to.
func CanTransition(current, to models.LeadStatus) bool {
	nexts, ok := LeadTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}
