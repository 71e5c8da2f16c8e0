package auth

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Clinic roles as issued in realm_access.roles
const (
	RoleAdmin        = "ADMIN"
	RoleDoctor       = "DOCTOR"
	RoleReceptionist = "RECEPTIONIST"
	RoleAccountant   = "ACCOUNTANT"
)

// Permission names checked by the router
const (
	PermPatientView   = "patient:view"
	PermPatientCreate = "patient:create"
	PermPatientUpdate = "patient:update"

	PermAppointmentView   = "appointment:view"
	PermAppointmentCreate = "appointment:create"
	PermAppointmentUpdate = "appointment:update"

	PermPaymentView   = "payment:view"
	PermPaymentCreate = "payment:create"
	PermPaymentUpdate = "payment:update"

	PermPrescriptionView   = "prescription:view"
	PermPrescriptionCreate = "prescription:create"
	PermPrescriptionUpdate = "prescription:update"

	PermDentalView   = "dental:view"
	PermDentalCreate = "dental:create"
	PermDentalUpdate = "dental:update"

	PermReportView = "report:view"

	PermLiveView = "live:view"
)

// Permissions maps role -> []permission
type Permissions map[string][]string

type permissionsFile struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoadPermissions loads a permissions.yml file and returns a role->permissions map.
func LoadPermissions(path string) (Permissions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read permissions file: %w", err)
	}
	var pf permissionsFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse permissions file: %w", err)
	}
	return Permissions(pf.Roles), nil
}
