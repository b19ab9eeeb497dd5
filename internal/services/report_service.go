package services

import (
	"math"
	"time"

	"sportstravel/internal/models"
	"sportstravel/internal/repositories"
)

type ReportService struct {
	Leads    *repositories.LeadRepository
	Events   *repositories.EventRepository
	Packages *repositories.PackageRepository
	Quotes   *repositories.QuoteRepository
}

func NewReportService(
	leads *repositories.LeadRepository,
	events *repositories.EventRepository,
	packages *repositories.PackageRepository,
	quotes *repositories.QuoteRepository,
) *ReportService {
	return &ReportService{Leads: leads, Events: events, Packages: packages, Quotes: quotes}
}

type StatusBreakdown struct {
	New        int `json:"new"`
	Contacted  int `json:"contacted"`
	QuoteSent  int `json:"quote_sent"`
	Interested int `json:"interested"`
	ClosedWon  int `json:"closed_won"`
	ClosedLost int `json:"closed_lost"`
}

type DashboardSummary struct {
	TotalLeads      int             `json:"total_leads"`
	ActiveEvents    int             `json:"active_events"`
	TotalPackages   int             `json:"total_packages"`
	TotalQuotes     int             `json:"total_quotes"`
	ConversionRate  float64         `json:"conversion_rate"`
	LeadsTrend      float64         `json:"leads_trend"`
	StatusBreakdown StatusBreakdown `json:"status_breakdown"`
}

type RevenueStats struct {
	TotalRevenue      float64 `json:"total_revenue"`
	AcceptedQuotes    int     `json:"accepted_quotes_count"`
	PendingRevenue    float64 `json:"pending_revenue"`
	PendingQuotes     int     `json:"pending_quotes_count"`
	AverageQuoteValue float64 `json:"average_quote_value"`
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func (s *ReportService) GetSummary() (*DashboardSummary, error) {
	totalLeads, err := s.Leads.CountLeads()
	if err != nil {
		return nil, err
	}
	activeEvents, err := s.Events.Count()
	if err != nil {
		return nil, err
	}
	totalPackages, err := s.Packages.Count()
	if err != nil {
		return nil, err
	}
	totalQuotes, err := s.Quotes.Count()
	if err != nil {
		return nil, err
	}
	byStatus, err := s.Leads.CountByStatus()
	if err != nil {
		return nil, err
	}

	closedWon := byStatus[models.LeadStatusClosedWon]
	var conversionRate float64
	if totalLeads > 0 {
		conversionRate = round1(float64(closedWon) / float64(totalLeads) * 100)
	}

	// Lead trend: last 30 days vs the 30 days before that.
	now := time.Now()
	recent, err := s.Leads.CountCreatedBetween(now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}
	previous, err := s.Leads.CountCreatedBetween(now.AddDate(0, 0, -60), now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	var trend float64
	if previous > 0 {
		trend = round1(float64(recent-previous) / float64(previous) * 100)
	}

	return &DashboardSummary{
		TotalLeads:     totalLeads,
		ActiveEvents:   activeEvents,
		TotalPackages:  totalPackages,
		TotalQuotes:    totalQuotes,
		ConversionRate: conversionRate,
		LeadsTrend:     trend,
		StatusBreakdown: StatusBreakdown{
			New:        byStatus[models.LeadStatusNew],
			Contacted:  byStatus[models.LeadStatusContacted],
			QuoteSent:  byStatus[models.LeadStatusQuoteSent],
			Interested: byStatus[models.LeadStatusInterested],
			ClosedWon:  closedWon,
			ClosedLost: byStatus[models.LeadStatusClosedLost],
		},
	}, nil
}

func (s *ReportService) GetRevenueStats() (*RevenueStats, error) {
	total, accepted, err := s.Quotes.SumByStatuses(models.QuoteStatusAccepted)
	if err != nil {
		return nil, err
	}
	pending, pendingCount, err := s.Quotes.SumByStatuses(models.QuoteStatusSent, models.QuoteStatusDraft)
	if err != nil {
		return nil, err
	}

	var avg float64
	if accepted > 0 {
		avg = math.Round(total/float64(accepted)*100) / 100
	}
	return &RevenueStats{
		TotalRevenue:      total,
		AcceptedQuotes:    accepted,
		PendingRevenue:    pending,
		PendingQuotes:     pendingCount,
		AverageQuoteValue: avg,
	}, nil
}

func (s *ReportService) RecentLeads(limit int) ([]models.Lead, error) {
	return s.Leads.ListRecent(limit)
}

func (s *ReportService) RecentQuotes(limit int) ([]models.Quote, error) {
	return s.Quotes.ListRecent(limit)
}
