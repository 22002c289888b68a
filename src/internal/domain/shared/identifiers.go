package shared

// Identifiers referenced across bounded contexts live here so that the
// giftcard context can hold a CustomerID without importing customer.

type CustomerMarker struct{}

type CustomerID = EntityID[CustomerMarker]

type StaffMarker struct{}

type StaffID = EntityID[StaffMarker]
