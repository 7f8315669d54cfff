package seed

import (
	"github.com/evcraddock/estate-office/internal/agent"
	"github.com/evcraddock/estate-office/internal/contact"
	"github.com/evcraddock/estate-office/internal/contract"
	"github.com/evcraddock/estate-office/internal/estate"
	"github.com/evcraddock/estate-office/internal/offer"
	"github.com/evcraddock/estate-office/internal/request"
)

func ptr[T any](v T) *T { return &v }

var contactRows = []*contact.Input{
	{Name: "John", Surname: "Smith", FatherName: "Michael", Document: "ID12345678", Telephone: "+1-555-0101", Email: "john.smith@email.com", Country: "USA", City: "New York", PostalCode: "10001", Street: "Broadway", PlacementNum: "123", Notes: ptr("Primary contact")},
	{Name: "Emma", Surname: "Johnson", FatherName: "David", Document: "ID87654321", Telephone: "+1-555-0102", Email: "emma.johnson@email.com", Country: "USA", City: "Los Angeles", PostalCode: "90210", Street: "Sunset Blvd", PlacementNum: "456", Notes: ptr("VIP client")},
	{Name: "Michael", Surname: "Brown", FatherName: "Robert", Document: "ID11223344", Telephone: "+1-555-0103", Email: "michael.brown@email.com", Country: "USA", City: "Chicago", PostalCode: "60601", Street: "Michigan Ave", PlacementNum: "789"},
	{Name: "Sarah", Surname: "Davis", FatherName: "William", Document: "ID44332211", Telephone: "+1-555-0104", Email: "sarah.davis@email.com", Country: "USA", City: "Houston", PostalCode: "77001", Street: "Main St", PlacementNum: "101", Notes: ptr("Preferred contact time: evenings")},
	{Name: "James", Surname: "Wilson", FatherName: "Thomas", Document: "ID55667788", Telephone: "+1-555-0105", Email: "james.wilson@email.com", Country: "USA", City: "Phoenix", PostalCode: "85001", Street: "Central Ave", PlacementNum: "202"},
	{Name: "Lisa", Surname: "Garcia", FatherName: "Carlos", Document: "ID99887766", Telephone: "+1-555-0106", Email: "lisa.garcia@email.com", Country: "USA", City: "Philadelphia", PostalCode: "19101", Street: "Market St", PlacementNum: "303", Notes: ptr("Spanish speaking")},
	{Name: "Robert", Surname: "Martinez", FatherName: "Jose", Document: "ID77885544", Telephone: "+1-555-0107", Email: "robert.martinez@email.com", Country: "USA", City: "San Antonio", PostalCode: "78201", Street: "Commerce St", PlacementNum: "404"},
	{Name: "Jennifer", Surname: "Anderson", FatherName: "Paul", Document: "ID33445566", Telephone: "+1-555-0108", Email: "jennifer.anderson@email.com", Country: "USA", City: "San Diego", PostalCode: "92101", Street: "Harbor Dr", PlacementNum: "505", Notes: ptr("Real estate investor")},
	{Name: "David", Surname: "Taylor", FatherName: "Mark", Document: "ID66554433", Telephone: "+1-555-0109", Email: "david.taylor@email.com", Country: "USA", City: "Dallas", PostalCode: "75201", Street: "Elm St", PlacementNum: "606"},
	{Name: "Jessica", Surname: "Thomas", FatherName: "Steven", Document: "ID22334455", Telephone: "+1-555-0110", Email: "jessica.thomas@email.com", Country: "USA", City: "Austin", PostalCode: "73301", Street: "Congress Ave", PlacementNum: "707", Notes: ptr("First-time buyer")},
}

var agentRows = []*agent.Input{
	{Rating: "5", PostName: "Senior Agent", Salary: ptr(75000.0), Currency: "USD", HiringDate: "2020-01-15 09:00:00", DepartmentName: "Sales"},
	{Rating: "4", PostName: "Agent", Salary: ptr(65000.0), Currency: "USD", HiringDate: "2021-03-22 09:00:00", DepartmentName: "Sales"},
	{Rating: "4", PostName: "Junior Agent", Salary: ptr(45000.0), Currency: "USD", HiringDate: "2022-06-10 09:00:00", DepartmentName: "Rentals"},
	{Rating: "5", PostName: "Team Lead", Salary: ptr(85000.0), Currency: "USD", HiringDate: "2019-11-05 09:00:00", DepartmentName: "Sales"},
	{Rating: "3", PostName: "Agent", Salary: ptr(55000.0), Currency: "USD", HiringDate: "2023-01-20 09:00:00", DepartmentName: "Rentals"},
}

// Relation fields index into the rows inserted earlier; -1 means none.
var estateRows = []struct {
	in     *estate.Input
	agent  int
	tenant int
}{
	{newEstate("Sunset Villa", estate.StatusAvailable, estate.TypeHouse, 250.50, 450000, "Los Angeles", "90210", "Sunset Blvd", "100", "5", "Luxury villa with pool"), 0, -1},
	{newEstate("Downtown Apartment", estate.StatusRented, estate.TypeApartment, 85.75, 2500, "New York", "10001", "Broadway", "500", "4", "Modern apartment"), 1, 0},
	{newEstate("Business Center", estate.StatusAvailable, estate.TypeCommercial, 500, 750000, "Chicago", "60601", "Michigan Ave", "200", "4", "Prime location"), 2, -1},
	{newEstate("Cozy Condo", estate.StatusSold, estate.TypeApartment, 120, 320000, "Houston", "77001", "Main St", "300", "3", "Recently renovated"), 3, -1},
	{newEstate("Garden House", estate.StatusAvailable, estate.TypeHouse, 180.25, 380000, "Phoenix", "85001", "Central Ave", "150", "4", "Large garden"), 4, -1},
	{newEstate("Studio Loft", estate.StatusRented, estate.TypeApartment, 45.50, 1800, "Philadelphia", "19101", "Market St", "800", "3", "Artistic district"), 0, 1},
	{newEstate("Retail Space", estate.StatusAvailable, estate.TypeCommercial, 200, 450000, "San Antonio", "78201", "Commerce St", "50", "4", "High foot traffic"), 1, -1},
	{newEstate("Beachfront Condo", estate.StatusReserved, estate.TypeApartment, 95, 280000, "San Diego", "92101", "Harbor Dr", "1001", "5", "Ocean view"), 2, -1},
	{newEstate("Family Home", estate.StatusAvailable, estate.TypeHouse, 220.75, 425000, "Dallas", "75201", "Elm St", "250", "4", "Great schools nearby"), 3, -1},
	{newEstate("Urban Apartment", estate.StatusRented, estate.TypeApartment, 75, 2200, "Austin", "73301", "Congress Ave", "600", "4", "Downtown location"), 4, 2},
}

func newEstate(name, status, kind string, square, price float64, city, postal, street, placement, rating, notes string) *estate.Input {
	return &estate.Input{
		Name: name, Status: status, Type: kind, Square: ptr(square), Price: ptr(price),
		Currency: agent.DefaultCurrency, Country: "USA", City: city, PostalCode: postal,
		Street: street, PlacementNum: placement, Rating: rating, Notes: ptr(notes),
	}
}

var contractRows = []struct {
	in                            *contract.Input
	estate, agent, tenant, renter int
}{
	{&contract.Input{Name: "Rental Agreement - Downtown Apt", Status: contract.StatusActive, SigningDate: "2024-01-15 10:00:00", ValidityPeriod: "2025-01-15 10:00:00", Notes: ptr("12-month lease")}, 1, 1, 0, -1},
	{&contract.Input{Name: "Sale Contract - Cozy Condo", Status: contract.StatusCompleted, SigningDate: "2024-03-10 14:30:00", ValidityPeriod: "2024-04-10 14:30:00", Notes: ptr("Cash purchase")}, 3, 3, -1, 1},
	{&contract.Input{Name: "Rental Agreement - Studio Loft", Status: contract.StatusActive, SigningDate: "2024-05-20 11:00:00", ValidityPeriod: "2025-05-20 11:00:00", Notes: ptr("12-month lease with option to renew")}, 5, 0, 1, -1},
	{&contract.Input{Name: "Rental Agreement - Urban Apt", Status: contract.StatusActive, SigningDate: "2024-06-01 09:30:00", ValidityPeriod: "2025-06-01 09:30:00", Notes: ptr("12-month lease")}, 9, 4, 2, -1},
	{&contract.Input{Name: "Sale Contract - Beachfront Condo", Status: contract.StatusPending, SigningDate: "2024-11-01 15:00:00", ValidityPeriod: "2024-12-01 15:00:00", Notes: ptr("Financing pending")}, 7, 2, -1, 3},
}

// Requests and offers are assigned to clients (and offers to agents) in order.
var requestRows = []*request.Input{
	{Name: "Looking for 2BR Apartment", Date: "2024-10-15 10:00:00", Type: request.TypeRental, Square: ptr(80.0), Price: ptr(2000.0), Currency: "USD", Country: ptr("USA"), City: ptr("New York"), RentalPeriodMonths: ptr(int64(12)), Notes: ptr("Pet-friendly preferred")},
	{Name: "Family House Purchase", Date: "2024-10-20 14:30:00", Type: request.TypePurchase, Square: ptr(200.0), Price: ptr(400000.0), Currency: "USD", Country: ptr("USA"), City: ptr("Los Angeles"), Notes: ptr("Good school district")},
	{Name: "Commercial Space Needed", Date: "2024-11-01 09:00:00", Type: request.TypeRental, Square: ptr(150.0), Price: ptr(3000.0), Currency: "USD", Country: ptr("USA"), City: ptr("Chicago"), RentalPeriodMonths: ptr(int64(24)), Notes: ptr("Ground floor preferred")},
	{Name: "Luxury Condo Search", Date: "2024-11-05 11:15:00", Type: request.TypePurchase, Square: ptr(120.0), Price: ptr(350000.0), Currency: "USD", Country: ptr("USA"), City: ptr("Houston"), Notes: ptr("High-rise building")},
	{Name: "Studio Apartment", Date: "2024-11-10 16:45:00", Type: request.TypeRental, Square: ptr(50.0), Price: ptr(1500.0), Currency: "USD", Country: ptr("USA"), City: ptr("Austin"), RentalPeriodMonths: ptr(int64(6)), Notes: ptr("Downtown location")},
}

var offerRows = []*offer.Input{
	{Name: "Sunset Villa Offer", Date: "2024-10-25 10:30:00", Type: offer.TypeSale, ClientFeedback: ptr("Interested but price too high"), Notes: ptr("Showed comparable properties")},
	{Name: "Downtown Apartment Viewing", Date: "2024-10-28 15:00:00", Type: offer.TypeRental, ClientFeedback: ptr("Loved the location"), Notes: ptr("Ready to sign lease")},
	{Name: "Business Center Proposal", Date: "2024-11-02 11:00:00", Type: offer.TypeSale, ClientFeedback: ptr("Considering multiple options"), Notes: ptr("Requested additional information")},
	{Name: "Garden House Showing", Date: "2024-11-08 14:20:00", Type: offer.TypeSale, ClientFeedback: ptr("Very satisfied with the property"), Notes: ptr("Made an offer")},
	{Name: "Studio Loft Tour", Date: "2024-11-12 09:45:00", Type: offer.TypeRental, ClientFeedback: ptr("Needs to think about it"), Notes: ptr("Following up next week")},
}
