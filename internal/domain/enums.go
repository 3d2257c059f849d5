package domain

import (
	"strings"
	"time"
)

// OrgUnit identifies one of the two organizational partitions a record belongs to.
type OrgUnit string

const (
	OrgUnitPrimary   OrgUnit = "PRIMARY"
	OrgUnitSecondary OrgUnit = "SECONDARY"
)

var orgUnitCodes = map[OrgUnit]int{
	OrgUnitPrimary:   160147,
	OrgUnitSecondary: 167147,
}

// OrgUnits returns both org units in their canonical order.
func OrgUnits() []OrgUnit {
	return []OrgUnit{OrgUnitPrimary, OrgUnitSecondary}
}

// Code returns the numeric management-unit code of the org unit.
func (o OrgUnit) Code() int {
	return orgUnitCodes[o]
}

// Valid reports whether o is one of the known org units.
func (o OrgUnit) Valid() bool {
	_, ok := orgUnitCodes[o]
	return ok
}

// ParseOrgUnit accepts the unit name (any case) or its numeric code.
func ParseOrgUnit(s string) (OrgUnit, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case string(OrgUnitPrimary), "PRIMARIA", "160147":
		return OrgUnitPrimary, nil
	case string(OrgUnitSecondary), "SECUNDARIA", "167147":
		return OrgUnitSecondary, nil
	}
	return "", &OrgUnitError{Value: s}
}

// RecordStatus is the lifecycle state of a fiscal record.
type RecordStatus string

const (
	StatusSettled RecordStatus = "SETTLED"
	StatusPaid    RecordStatus = "PAID"
)

// ParseRecordStatus accepts the status name in any case.
func ParseRecordStatus(s string) (RecordStatus, error) {
	switch RecordStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusSettled:
		return StatusSettled, nil
	case StatusPaid:
		return StatusPaid, nil
	}
	return "", &FilterError{Field: "status", Reason: "must be SETTLED or PAID"}
}

// ResolveStatus derives the lifecycle status from the presence of a payment date.
func ResolveStatus(paymentDate *time.Time) RecordStatus {
	if paymentDate != nil {
		return StatusPaid
	}
	return StatusSettled
}

// UserRole represents the role of a user.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleOperator UserRole = "operator"
)

// ValidUserRoles is the set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:    true,
	RoleOperator: true,
}

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName returns the Portuguese name of month m (1-12), or "" when out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}
