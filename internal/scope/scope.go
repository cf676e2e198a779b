// Package scope is the access-scoping engine: a stateless policy that
// decides, per principal role, which Machine/Maintenance/Claim rows are
// visible and whether a create is allowed. Visibility is expressed as
// gorm scopes so the store can compose it with filters; write decisions
// are pure functions over the principal and the owning machine.
package scope

import (
	"errors"

	"gorm.io/gorm"

	"fleet-service-backend/internal/model"
)

// ErrDenied is returned when the principal's role lacks the rights for
// the attempted operation. Handlers translate it into HTTP 403.
var ErrDenied = errors.New("permission denied")

// Principal is the authenticated actor scoping decisions run against.
// A nil *Principal means the request is unauthenticated.
type Principal struct {
	ID   uint
	Role model.Role
}

// none is a scope matching no rows: unknown roles fail closed.
func none(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// MachineVisibility restricts a machine query to the rows the principal
// may see. The machine has no per-record servicer distinct from itself,
// so the service role matches on the machine's own service_company.
func MachineVisibility(p *Principal) func(*gorm.DB) *gorm.DB {
	if p == nil {
		return none
	}
	switch p.Role {
	case model.RoleManager:
		return func(db *gorm.DB) *gorm.DB { return db }
	case model.RoleClient:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("machines.client_id = ?", p.ID)
		}
	case model.RoleService:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("machines.service_company_id = ?", p.ID)
		}
	default:
		return none
	}
}

// MaintenanceVisibility restricts a maintenance query. Client sees
// records on machines it owns; service sees the union of records naming
// it as servicer and records on machines it services.
func MaintenanceVisibility(p *Principal) func(*gorm.DB) *gorm.DB {
	return ledgerVisibility(p, "maintenances")
}

// ClaimVisibility restricts a claim query with the same shape as
// maintenance visibility.
func ClaimVisibility(p *Principal) func(*gorm.DB) *gorm.DB {
	return ledgerVisibility(p, "claims")
}

// ledgerVisibility implements the shared Maintenance/Claim rule. Both
// tables carry machine_id and a nullable service_company_id, so one
// predicate serves them with the table name substituted.
func ledgerVisibility(p *Principal, table string) func(*gorm.DB) *gorm.DB {
	if p == nil {
		return none
	}
	switch p.Role {
	case model.RoleManager:
		return func(db *gorm.DB) *gorm.DB { return db }
	case model.RoleClient:
		return func(db *gorm.DB) *gorm.DB {
			return db.
				Joins("JOIN machines ON machines.id = "+table+".machine_id").
				Where("machines.client_id = ?", p.ID)
		}
	case model.RoleService:
		return func(db *gorm.DB) *gorm.DB {
			return db.
				Joins("JOIN machines ON machines.id = "+table+".machine_id").
				Where(table+".service_company_id = ? OR machines.service_company_id = ?", p.ID, p.ID)
		}
	default:
		return none
	}
}

// MaintenanceCreate decides whether the principal may attach a
// maintenance record to the machine and returns the service_company id
// the record must carry: the machine's servicer for manager and client
// creates (possibly nil), the principal itself for service creates. The
// caller never gets to choose the value.
func MaintenanceCreate(p *Principal, m *model.Machine) (*uint, error) {
	if p == nil {
		return nil, ErrDenied
	}
	switch p.Role {
	case model.RoleManager:
		return m.ServiceCompanyID, nil
	case model.RoleClient:
		if m.ClientID == nil || *m.ClientID != p.ID {
			return nil, ErrDenied
		}
		return m.ServiceCompanyID, nil
	case model.RoleService:
		if m.ServiceCompanyID == nil || *m.ServiceCompanyID != p.ID {
			return nil, ErrDenied
		}
		id := p.ID
		return &id, nil
	default:
		return nil, ErrDenied
	}
}

// ClaimCreate decides whether the principal may file a claim against
// the machine. Clients are read-only for claims.
func ClaimCreate(p *Principal, m *model.Machine) (*uint, error) {
	if p == nil {
		return nil, ErrDenied
	}
	switch p.Role {
	case model.RoleManager:
		return m.ServiceCompanyID, nil
	case model.RoleService:
		if m.ServiceCompanyID == nil || *m.ServiceCompanyID != p.ID {
			return nil, ErrDenied
		}
		id := p.ID
		return &id, nil
	default:
		return nil, ErrDenied
	}
}

// ReferenceWrite gates catalog mutation: managers only.
func ReferenceWrite(p *Principal) error {
	if p == nil || p.Role != model.RoleManager {
		return ErrDenied
	}
	return nil
}
