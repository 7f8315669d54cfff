package dashboard

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/estate-office/internal/client"
	"github.com/evcraddock/estate-office/internal/contact"
	"github.com/evcraddock/estate-office/internal/contract"
	"github.com/evcraddock/estate-office/internal/db"
	"github.com/evcraddock/estate-office/internal/estate"
	"github.com/evcraddock/estate-office/internal/offer"
	"github.com/evcraddock/estate-office/internal/request"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func TestOverall(t *testing.T) {
	svc, d := testService(t)
	ctx := context.Background()

	empty, err := svc.Overall(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Overall{}, empty)

	_, err = contact.NewRepository(d).Create(ctx, sampleContact())
	require.NoError(t, err)
	for _, kind := range []string{"tenant", "renter", "tenant"} {
		_, err := client.NewRepository(d).Create(ctx, &client.Input{Type: kind})
		require.NoError(t, err)
	}
	createEstate(t, d, "Sunset Villa", estate.TypeHouse, estate.StatusAvailable, 450000, 250)

	got, err := svc.Overall(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Contacts)
	assert.Equal(t, int64(3), got.Clients)
	assert.Equal(t, int64(1), got.Estates)
	assert.Zero(t, got.Agents)
	assert.Zero(t, got.Contracts)

	clients, err := svc.Clients(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"tenant": 2, "renter": 1}, clients.ByType)
}

func TestOverallMatchesRowCounts(t *testing.T) {
	svc, d := testService(t)
	ctx := context.Background()

	contacts := contact.NewRepository(d)
	for i := 0; i < 3; i++ {
		_, err := contacts.Create(ctx, sampleContact())
		require.NoError(t, err)
	}
	for _, kind := range []string{"tenant", "renter"} {
		_, err := client.NewRepository(d).Create(ctx, &client.Input{Type: kind})
		require.NoError(t, err)
	}
	createEstate(t, d, "Family Home", estate.TypeHouse, estate.StatusAvailable, 425000, 220)

	got, err := svc.Overall(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Overall{Contacts: 3, Clients: 2, Estates: 1}, got)
}

func TestEstates(t *testing.T) {
	svc, d := testService(t)
	ctx := context.Background()

	empty, err := svc.Estates(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.ByType)
	assert.Equal(t, Pricing{}, empty.Pricing)
	assert.Zero(t, empty.AverageSquare)

	createEstate(t, d, "Sunset Villa", estate.TypeHouse, estate.StatusAvailable, 450000, 250)
	createEstate(t, d, "Downtown Apt", estate.TypeApartment, estate.StatusRented, 2500, 85)
	createEstate(t, d, "Cozy Condo", estate.TypeApartment, estate.StatusAvailable, 320000, 95)

	got, err := svc.Estates(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{estate.TypeHouse: 1, estate.TypeApartment: 2}, got.ByType)
	assert.Equal(t, map[string]int64{estate.StatusAvailable: 2, estate.StatusRented: 1}, got.ByStatus)
	assert.InDelta(t, 257500.0, got.Pricing.Average, 0.001)
	assert.Equal(t, 2500.0, got.Pricing.Minimum)
	assert.Equal(t, 450000.0, got.Pricing.Maximum)
	assert.InDelta(t, 143.333, got.AverageSquare, 0.001)
}

func TestContracts(t *testing.T) {
	svc, d := testService(t)
	ctx := context.Background()
	repo := contract.NewRepository(d)

	rows := []struct {
		signed, validUntil, status string
	}{
		{"2025-01-10", "2026-01-10", contract.StatusActive},
		{"2025-01-20", "2025-02-01", contract.StatusExpired},
		{"2025-03-02", "2026-03-02", contract.StatusActive},
		{"2023-12-01", "2024-12-01", contract.StatusCompleted},
	}
	for i, row := range rows {
		_, err := repo.Create(ctx, &contract.Input{
			Name: fmt.Sprintf("Contract %d", i), Status: row.status,
			SigningDate: row.signed, ValidityPeriod: row.validUntil,
		})
		require.NoError(t, err)
	}

	got, err := svc.Contracts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		contract.StatusActive: 2, contract.StatusExpired: 1, contract.StatusCompleted: 1,
	}, got.ByStatus)
	assert.Equal(t, int64(2), got.Active)
	assert.Equal(t, int64(2), got.Expired)
	assert.Equal(t, []MonthCount{
		{Month: "2025-01", Count: 2},
		{Month: "2025-03", Count: 1},
	}, got.MonthlyTrend)
}

func TestRequestsAndOffers(t *testing.T) {
	svc, d := testService(t)
	ctx := context.Background()

	requests := request.NewRepository(d)
	price1, price2 := 1000.0, 3000.0
	reqs := []*request.Input{
		{Name: "Old", Type: request.TypeRental, Date: "2024-08-01"},
		{Name: "Rent", Type: request.TypeRental, Date: "2024-11-05", Price: &price1},
		{Name: "Buy", Type: request.TypePurchase, Date: "2025-03-01", Price: &price2, Currency: "EUR"},
	}
	for _, in := range reqs {
		_, err := requests.Create(ctx, in)
		require.NoError(t, err)
	}

	rs, err := svc.Requests(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{request.TypeRental: 2, request.TypePurchase: 1}, rs.ByType)
	assert.Equal(t, map[string]int64{"USD": 2, "EUR": 1}, rs.ByCurrency)
	assert.InDelta(t, 2000.0, rs.AveragePrice, 0.001)
	assert.Equal(t, []MonthCount{
		{Month: "2024-11", Count: 1},
		{Month: "2025-03", Count: 1},
	}, rs.MonthlyTrend)

	empty, err := svc.Offers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.MonthlyTrend)
	assert.Empty(t, empty.MonthlyTrend)

	_, err = offer.NewRepository(d).Create(ctx, &offer.Input{Name: "Villa", Type: offer.TypeSale, Date: "2025-02-14"})
	require.NoError(t, err)

	os, err := svc.Offers(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{offer.TypeSale: 1}, os.ByType)
	assert.Equal(t, []MonthCount{{Month: "2025-02", Count: 1}}, os.MonthlyTrend)
}

func TestRecentActivities(t *testing.T) {
	svc, d := testService(t)
	ctx := context.Background()

	estateID := createEstate(t, d, "Garden House", estate.TypeHouse, estate.StatusSold, 380000, 180)
	contracts := contract.NewRepository(d)
	for day := 1; day <= 6; day++ {
		in := &contract.Input{
			Name: fmt.Sprintf("Contract %d", day), Status: contract.StatusActive,
			SigningDate: fmt.Sprintf("2025-01-%02dT10:00:00Z", day), ValidityPeriod: "2026-01-01",
		}
		if day == 6 {
			in.EstateID = &estateID
		}
		_, err := contracts.Create(ctx, in)
		require.NoError(t, err)
	}
	requests := request.NewRepository(d)
	offers := offer.NewRepository(d)
	for day := 1; day <= 5; day++ {
		_, err := requests.Create(ctx, &request.Input{
			Name: fmt.Sprintf("Request %d", day), Type: request.TypeRental,
			Date: fmt.Sprintf("2025-02-%02d", day),
		})
		require.NoError(t, err)
		_, err = offers.Create(ctx, &offer.Input{
			Name: fmt.Sprintf("Offer %d", day), Type: offer.TypeSale,
			Date: fmt.Sprintf("2024-12-%02d", day),
		})
		require.NoError(t, err)
	}

	got, err := svc.RecentActivities(ctx)
	require.NoError(t, err)
	require.Len(t, got, 10)

	assert.Equal(t, "request", got[0].Type)
	assert.Equal(t, "Request 5", got[0].Title)
	assert.Equal(t, "New rental request", got[0].Description)

	assert.Equal(t, "contract", got[5].Type)
	assert.Equal(t, "Contract 6", got[5].Title)
	assert.Equal(t, "Contract signed for Garden House", got[5].Description)
	assert.Equal(t, "Contract signed for property", got[6].Description)
	assert.Equal(t, "Contract 2", got[9].Title)

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.After(got[i-1].Date), "activity %d out of order", i)
	}
}

func TestWindowStart(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		months int
		want   time.Time
	}{
		{"current month only", fixedNow, 1, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"six months", fixedNow, 6, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"twelve months", fixedNow, 12, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"crosses year", time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC), 2, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, windowStart(tt.now, tt.months))
		})
	}
}

func TestBucketByMonth(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, []MonthCount{}, bucketByMonth(nil))
	assert.Equal(t, []MonthCount{
		{Month: "2024-12", Count: 2},
		{Month: "2025-02", Count: 1},
	}, bucketByMonth([]time.Time{day(2024, 12, 1), day(2024, 12, 31), day(2025, 2, 3)}))
}

func sampleContact() *contact.Input {
	return &contact.Input{
		Name: "John", Surname: "Smith", FatherName: "Robert", Document: "ID12345678",
		Telephone: "+1-555-0101", Email: "john.smith@email.com", Country: "USA",
		City: "New York", PostalCode: "10001", Street: "Broadway", PlacementNum: "123",
	}
}

func createEstate(t *testing.T, d *db.DB, name, kind, status string, price, square float64) int64 {
	t.Helper()
	id, err := estate.NewRepository(d).Create(context.Background(), &estate.Input{
		Name: name, Status: status, Type: kind, Square: &square, Price: &price,
		Country: "USA", City: "Austin", PostalCode: "73301", Street: "Congress Ave",
		PlacementNum: "10", Rating: "5",
	})
	require.NoError(t, err)
	return id
}

func testService(t *testing.T) (*Service, *db.DB) {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	svc := NewService(d)
	svc.now = func() time.Time { return fixedNow }
	return svc, d
}
