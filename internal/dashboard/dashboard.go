// Package dashboard computes the aggregate statistics shown on the back
// office dashboard. Every figure is read live from the store.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/evcraddock/estate-office/internal/contract"
	"github.com/evcraddock/estate-office/internal/db"
	"github.com/evcraddock/estate-office/internal/offer"
	"github.com/evcraddock/estate-office/internal/request"
)

// Trend windows in calendar months, the current month included.
const (
	ContractTrendMonths = 12
	RequestTrendMonths  = 6
	OfferTrendMonths    = 6
)

const (
	recentPerKind  = 5
	recentActivity = 10
)

// Service runs dashboard aggregations.
type Service struct {
	db        *db.DB
	contracts *contract.Repository
	requests  *request.Repository
	offers    *offer.Repository
	now       func() time.Time
}

// NewService creates a dashboard service.
func NewService(d *db.DB) *Service {
	return &Service{
		db:        d,
		contracts: contract.NewRepository(d),
		requests:  request.NewRepository(d),
		offers:    offer.NewRepository(d),
		now:       time.Now,
	}
}

// Overall holds the row count of every entity table.
type Overall struct {
	Contacts  int64 `json:"contacts"`
	Clients   int64 `json:"clients"`
	Estates   int64 `json:"estates"`
	Contracts int64 `json:"contracts"`
	Requests  int64 `json:"requests"`
	Offers    int64 `json:"offers"`
	Agents    int64 `json:"agents"`
}

// ClientStats groups clients by type.
type ClientStats struct {
	ByType map[string]int64 `json:"byType"`
}

// Pricing summarizes estate prices.
type Pricing struct {
	Average float64 `json:"average"`
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
}

// EstateStats groups estates and summarizes their price and size.
type EstateStats struct {
	ByType        map[string]int64 `json:"byType"`
	ByStatus      map[string]int64 `json:"byStatus"`
	Pricing       Pricing          `json:"pricing"`
	AverageSquare float64          `json:"averageSquare"`
}

// MonthCount is one bucket of a monthly trend.
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// ContractStats groups contracts and counts them by validity.
type ContractStats struct {
	ByStatus     map[string]int64 `json:"byStatus"`
	Active       int64            `json:"active"`
	Expired      int64            `json:"expired"`
	MonthlyTrend []MonthCount     `json:"monthlyTrend"`
}

// RequestStats groups requests and tracks their volume.
type RequestStats struct {
	ByType       map[string]int64 `json:"byType"`
	MonthlyTrend []MonthCount     `json:"monthlyTrend"`
	AveragePrice float64          `json:"averagePrice"`
	ByCurrency   map[string]int64 `json:"byCurrency"`
}

// OfferStats groups offers and tracks their volume.
type OfferStats struct {
	ByType       map[string]int64 `json:"byType"`
	MonthlyTrend []MonthCount     `json:"monthlyTrend"`
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	Type        string    `json:"type"`
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// Overall counts the rows of every entity table.
func (s *Service) Overall(ctx context.Context) (*Overall, error) {
	var o Overall
	targets := []struct {
		table string
		dst   *int64
	}{
		{"contact", &o.Contacts},
		{"client", &o.Clients},
		{"agent", &o.Agents},
		{"estate", &o.Estates},
		{"contract", &o.Contracts},
		{"request", &o.Requests},
		{"offer", &o.Offers},
	}
	for _, t := range targets {
		n, err := s.db.CountRows(ctx, t.table)
		if err != nil {
			return nil, err
		}
		*t.dst = n
	}
	return &o, nil
}

// Clients groups clients by typeofClient.
func (s *Service) Clients(ctx context.Context) (*ClientStats, error) {
	byType, err := s.db.GroupCount(ctx, "client", "typeofClient")
	if err != nil {
		return nil, err
	}
	return &ClientStats{ByType: byType}, nil
}

// Estates groups estates by type and status and summarizes price and square.
func (s *Service) Estates(ctx context.Context) (*EstateStats, error) {
	byType, err := s.db.GroupCount(ctx, "estate", "estate_type")
	if err != nil {
		return nil, err
	}
	byStatus, err := s.db.GroupCount(ctx, "estate", "estate_status")
	if err != nil {
		return nil, err
	}
	price, err := s.db.Summarize(ctx, "estate", "price")
	if err != nil {
		return nil, err
	}
	square, err := s.db.Summarize(ctx, "estate", "square")
	if err != nil {
		return nil, err
	}

	return &EstateStats{
		ByType:   byType,
		ByStatus: byStatus,
		Pricing: Pricing{
			Average: price.Average,
			Minimum: price.Minimum,
			Maximum: price.Maximum,
		},
		AverageSquare: square.Average,
	}, nil
}

// Contracts groups contracts by status, counts them by validity against
// now and builds the signing trend.
func (s *Service) Contracts(ctx context.Context) (*ContractStats, error) {
	now := s.now().UTC()

	byStatus, err := s.db.GroupCount(ctx, "contract", "contract_status")
	if err != nil {
		return nil, err
	}
	active, err := s.db.CountAfter(ctx, "contract", "validity_period", now)
	if err != nil {
		return nil, err
	}
	expired, err := s.db.CountNotAfter(ctx, "contract", "validity_period", now)
	if err != nil {
		return nil, err
	}
	trend, err := s.trend(ctx, "contract", "signing_date", ContractTrendMonths, now)
	if err != nil {
		return nil, err
	}

	return &ContractStats{
		ByStatus:     byStatus,
		Active:       active,
		Expired:      expired,
		MonthlyTrend: trend,
	}, nil
}

// Requests groups requests by type and currency, averages the requested
// price and builds the request trend.
func (s *Service) Requests(ctx context.Context) (*RequestStats, error) {
	byType, err := s.db.GroupCount(ctx, "request", "request_type")
	if err != nil {
		return nil, err
	}
	trend, err := s.trend(ctx, "request", "request_date", RequestTrendMonths, s.now().UTC())
	if err != nil {
		return nil, err
	}
	price, err := s.db.Summarize(ctx, "request", "price")
	if err != nil {
		return nil, err
	}
	byCurrency, err := s.db.GroupCount(ctx, "request", "currency")
	if err != nil {
		return nil, err
	}

	return &RequestStats{
		ByType:       byType,
		MonthlyTrend: trend,
		AveragePrice: price.Average,
		ByCurrency:   byCurrency,
	}, nil
}

// Offers groups offers by type and builds the offer trend.
func (s *Service) Offers(ctx context.Context) (*OfferStats, error) {
	byType, err := s.db.GroupCount(ctx, "offer", "offer_type")
	if err != nil {
		return nil, err
	}
	trend, err := s.trend(ctx, "offer", "offer_date", OfferTrendMonths, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return &OfferStats{ByType: byType, MonthlyTrend: trend}, nil
}

// RecentActivities merges the latest contracts, requests and offers into
// one feed, newest first.
func (s *Service) RecentActivities(ctx context.Context) ([]Activity, error) {
	contracts, err := s.contracts.Latest(ctx, recentPerKind)
	if err != nil {
		return nil, fmt.Errorf("loading recent contracts: %w", err)
	}
	requests, err := s.requests.Latest(ctx, recentPerKind)
	if err != nil {
		return nil, fmt.Errorf("loading recent requests: %w", err)
	}
	offers, err := s.offers.Latest(ctx, recentPerKind)
	if err != nil {
		return nil, fmt.Errorf("loading recent offers: %w", err)
	}

	activities := make([]Activity, 0, len(contracts)+len(requests)+len(offers))
	for _, c := range contracts {
		subject := "property"
		if c.Estate != nil && c.Estate.Name != "" {
			subject = c.Estate.Name
		}
		activities = append(activities, Activity{
			Type:        "contract",
			ID:          c.ID,
			Title:       c.Name,
			Date:        c.SigningDate,
			Description: "Contract signed for " + subject,
		})
	}
	for _, r := range requests {
		activities = append(activities, Activity{
			Type:        "request",
			ID:          r.ID,
			Title:       r.Name,
			Date:        r.Date,
			Description: "New " + r.Type + " request",
		})
	}
	for _, o := range offers {
		activities = append(activities, Activity{
			Type:        "offer",
			ID:          o.ID,
			Title:       o.Name,
			Date:        o.Date,
			Description: "New " + o.Type + " offer",
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
	if len(activities) > recentActivity {
		activities = activities[:recentActivity]
	}
	return activities, nil
}

// trend counts rows of table per calendar month of col, over the last
// months months ending with the month of now.
func (s *Service) trend(ctx context.Context, table, col string, months int, now time.Time) ([]MonthCount, error) {
	dates, err := s.db.DatesSince(ctx, table, col, windowStart(now, months))
	if err != nil {
		return nil, err
	}
	return bucketByMonth(dates), nil
}

// windowStart returns the first instant of the month months-1 months
// before now.
func windowStart(now time.Time, months int) time.Time {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -(months - 1), 0)
}

// bucketByMonth counts ascending dates per "YYYY-MM". Empty months are
// omitted.
func bucketByMonth(dates []time.Time) []MonthCount {
	trend := []MonthCount{}
	for _, d := range dates {
		month := d.UTC().Format("2006-01")
		if n := len(trend); n > 0 && trend[n-1].Month == month {
			trend[n-1].Count++
			continue
		}
		trend = append(trend, MonthCount{Month: month, Count: 1})
	}
	return trend
}
