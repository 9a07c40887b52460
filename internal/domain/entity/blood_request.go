package entity

import (
	"time"
)

// Request status values
const (
	StatusPending    = "pending"
	StatusInProgress = "inprogress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Actor roles
const (
	RoleRequester = "requester"
	RoleDonor     = "donor"
	RoleAdmin     = "admin"
	RoleVolunteer = "volunteer"
	RoleSystem    = "system"
)

// transitions is the status graph: terminal states have no outgoing edges
// and no edge re-enters pending.
var transitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// IsValidStatus reports whether s is one of the known status values.
func IsValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminalStatus reports whether s has no outgoing transitions.
func IsTerminalStatus(s string) bool {
	edges, ok := transitions[s]
	return ok && len(edges) == 0
}

// CanTransition reports whether the edge from -> to exists in the graph.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Person identifies a requester or donor on a blood request.
type Person struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// IsZero reports whether no person is bound.
func (p Person) IsZero() bool {
	return p.ID == "" && p.Name == "" && p.Email == ""
}

// Recipient is the patient receiving blood.
type Recipient struct {
	Name     string `bson:"name" json:"name"`
	Hospital string `bson:"hospital" json:"hospital"`
}

// DonationInfo describes what is needed and when.
type DonationInfo struct {
	BloodGroup     string `bson:"bloodGroup" json:"bloodGroup"`
	RequiredDate   string `bson:"requiredDate" json:"requiredDate"`
	RequiredTime   string `bson:"requiredTime" json:"requiredTime"`
	Urgency        string `bson:"urgency" json:"urgency"`
	AdditionalInfo string `bson:"additionalInfo" json:"additionalInfo"`
}

// Location is where the donation is needed.
type Location struct {
	Division    string `bson:"division" json:"division"`
	District    string `bson:"district" json:"district"`
	Upazila     string `bson:"upazila" json:"upazila"`
	FullAddress string `bson:"fullAddress" json:"fullAddress"`
}

// Actor is the identity performing an operation.
type Actor struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Role  string `bson:"role" json:"role"`
}

// SystemActor is recorded when no acting identity is available.
func SystemActor() Actor {
	return Actor{ID: "system", Name: "system", Email: "system", Role: RoleSystem}
}

// StatusEntry is one immutable record of a status change.
type StatusEntry struct {
	Status    string    `bson:"status" json:"status"`
	ChangedAt time.Time `bson:"changedAt" json:"changedAt"`
	ChangedBy Actor     `bson:"changedBy" json:"changedBy"`
}

// Status holds the current state and its bounded change history,
// newest entries last.
type Status struct {
	Current string        `bson:"current" json:"current"`
	History []StatusEntry `bson:"history" json:"history"`
}

// BloodRequest is the central entity. The donor reference is the nested
// object below; older records keyed the donor under metadata fields, which
// is treated as schema drift and not supported.
type BloodRequest struct {
	ID             string       `bson:"_id,omitempty" json:"id"`
	Requester      Person       `bson:"requester" json:"requester"`
	Donor          Person       `bson:"donor,omitempty" json:"donor,omitempty"`
	Recipient      Recipient    `bson:"recipient" json:"recipient"`
	DonationInfo   DonationInfo `bson:"donationInfo" json:"donationInfo"`
	Location       Location     `bson:"location" json:"location"`
	Status         Status       `bson:"status" json:"status"`
	DonationStatus string       `bson:"donationStatus" json:"donationStatus"`
	CreatedAt      time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time    `bson:"updatedAt" json:"updatedAt"`
}
