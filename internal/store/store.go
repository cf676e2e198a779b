package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fleet-service-backend/internal/model"
	"fleet-service-backend/internal/scope"
)

// Store defines the interface for all database operations. Every read
// that takes a principal is scoped by the access policy; writes run the
// create-permission checks and derived-field computation before
// touching the database.
type Store interface {
	DB() *gorm.DB

	UserByUsername(ctx context.Context, username string) (*model.User, error)
	UserByID(ctx context.Context, id uint) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error

	ListMachines(ctx context.Context, p *scope.Principal, f MachineFilter) ([]model.Machine, error)
	GetMachine(ctx context.Context, p *scope.Principal, id uint) (*model.Machine, error)
	MachineBySerial(ctx context.Context, serial string) (*model.Machine, error)

	ListMaintenance(ctx context.Context, p *scope.Principal, f MaintenanceFilter) ([]model.Maintenance, error)
	GetMaintenance(ctx context.Context, p *scope.Principal, id uint) (*model.Maintenance, error)
	CreateMaintenance(ctx context.Context, p *scope.Principal, rec *model.Maintenance) error

	ListClaims(ctx context.Context, p *scope.Principal, f ClaimFilter) ([]model.Claim, error)
	GetClaim(ctx context.Context, p *scope.Principal, id uint) (*model.Claim, error)
	CreateClaim(ctx context.Context, p *scope.Principal, rec *model.Claim) error

	ListReferences(ctx context.Context, f ReferenceFilter) ([]model.ReferenceItem, error)
	GetReference(ctx context.Context, id uint) (*model.ReferenceItem, error)
	CreateReference(ctx context.Context, p *scope.Principal, item *model.ReferenceItem) error
	UpdateReference(ctx context.Context, p *scope.Principal, id uint, patch ReferencePatch) (*model.ReferenceItem, error)
	DeleteReference(ctx context.Context, p *scope.Principal, id uint) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// --- Users ---

func (s *gormStore) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) UserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	if !user.Role.Valid() {
		return validationErr("role", "unknown role")
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// --- Machines ---

func machinePreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("MachineModel").
		Preload("EngineModel").
		Preload("TransmissionModel").
		Preload("DriveAxleModel").
		Preload("SteerAxleModel").
		Preload("Client").
		Preload("ServiceCompany")
}

func (s *gormStore) ListMachines(ctx context.Context, p *scope.Principal, f MachineFilter) ([]model.Machine, error) {
	q := s.db.WithContext(ctx).Model(&model.Machine{}).
		Scopes(scope.MachineVisibility(p))
	q = machinePreloads(q)

	if f.MachineModelID != nil {
		q = q.Where("machines.machine_model_id = ?", *f.MachineModelID)
	}
	if f.EngineModelID != nil {
		q = q.Where("machines.engine_model_id = ?", *f.EngineModelID)
	}
	if f.TransmissionModelID != nil {
		q = q.Where("machines.transmission_model_id = ?", *f.TransmissionModelID)
	}
	if f.DriveAxleModelID != nil {
		q = q.Where("machines.drive_axle_model_id = ?", *f.DriveAxleModelID)
	}
	if f.SteerAxleModelID != nil {
		q = q.Where("machines.steer_axle_model_id = ?", *f.SteerAxleModelID)
	}
	if f.SerialContains != "" {
		q = q.Where("machines.serial_number LIKE ?", "%"+f.SerialContains+"%")
	}

	var machines []model.Machine
	err := q.Order("machines.shipment_date DESC, machines.serial_number").
		Scopes(f.Page.apply).
		Find(&machines).Error
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	return machines, nil
}

func (s *gormStore) GetMachine(ctx context.Context, p *scope.Principal, id uint) (*model.Machine, error) {
	var machine model.Machine
	err := machinePreloads(s.db.WithContext(ctx).Model(&model.Machine{})).
		Scopes(scope.MachineVisibility(p)).
		Where("machines.id = ?", id).
		First(&machine).Error
	if err != nil {
		return nil, translate(err)
	}
	return &machine, nil
}

func (s *gormStore) MachineBySerial(ctx context.Context, serial string) (*model.Machine, error) {
	var machine model.Machine
	err := s.db.WithContext(ctx).
		Preload("MachineModel").
		Preload("EngineModel").
		Preload("TransmissionModel").
		Preload("DriveAxleModel").
		Preload("SteerAxleModel").
		Where("serial_number = ?", serial).
		First(&machine).Error
	if err != nil {
		return nil, translate(err)
	}
	return &machine, nil
}

// --- Maintenance ---

func maintenancePreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("MaintenanceType").
		Preload("ServiceOrganization").
		Preload("Machine").
		Preload("Machine.MachineModel").
		Preload("ServiceCompany")
}

func (s *gormStore) ListMaintenance(ctx context.Context, p *scope.Principal, f MaintenanceFilter) ([]model.Maintenance, error) {
	q := s.db.WithContext(ctx).Model(&model.Maintenance{}).
		Scopes(scope.MaintenanceVisibility(p))
	q = maintenancePreloads(q)

	if f.MaintenanceTypeID != nil {
		q = q.Where("maintenances.maintenance_type_id = ?", *f.MaintenanceTypeID)
	}
	if f.ServiceCompanyID != nil {
		q = q.Where("maintenances.service_company_id = ?", *f.ServiceCompanyID)
	}
	q = s.machineSerialFilter(q, "maintenances", f.MachineSerial, f.MachineSerialLike)
	q = dateFilter(q, "maintenances.maintenance_date", f.Date, f.DateFrom, f.DateTo)

	var records []model.Maintenance
	err := q.Order("maintenances.maintenance_date DESC, maintenances.id DESC").
		Scopes(f.Page.apply).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}
	return records, nil
}

func (s *gormStore) GetMaintenance(ctx context.Context, p *scope.Principal, id uint) (*model.Maintenance, error) {
	var rec model.Maintenance
	err := maintenancePreloads(s.db.WithContext(ctx).Model(&model.Maintenance{})).
		Scopes(scope.MaintenanceVisibility(p)).
		Where("maintenances.id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (s *gormStore) CreateMaintenance(ctx context.Context, p *scope.Principal, rec *model.Maintenance) error {
	if rec.MachineID == 0 {
		return validationErr("machine_id", "machine is required")
	}
	if rec.MaintenanceDate.IsZero() {
		return validationErr("maintenance_date", "maintenance date is required")
	}
	if rec.OperatingTime != nil && *rec.OperatingTime < 0 {
		return validationErr("operating_time", "operating time cannot be negative")
	}
	if err := s.requireCategory(ctx, rec.MaintenanceTypeID, model.CategoryMaintenanceType, "maintenance_type_id"); err != nil {
		return err
	}
	if rec.ServiceOrganizationID != nil {
		if err := s.requireCategory(ctx, *rec.ServiceOrganizationID, model.CategoryServiceOrganization, "service_organization_id"); err != nil {
			return err
		}
	}

	var machine model.Machine
	if err := s.db.WithContext(ctx).First(&machine, rec.MachineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationErr("machine_id", "unknown machine")
		}
		return fmt.Errorf("load machine: %w", err)
	}

	serviceCompanyID, err := scope.MaintenanceCreate(p, &machine)
	if err != nil {
		return err
	}
	rec.ServiceCompanyID = serviceCompanyID
	rec.ServiceCompany = nil

	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create maintenance: %w", err)
	}
	return maintenancePreloads(s.db.WithContext(ctx)).First(rec, rec.ID).Error
}

// --- Claims ---

func claimPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("FailureNode").
		Preload("RepairMethod").
		Preload("Machine").
		Preload("Machine.MachineModel").
		Preload("ServiceCompany")
}

func (s *gormStore) ListClaims(ctx context.Context, p *scope.Principal, f ClaimFilter) ([]model.Claim, error) {
	q := s.db.WithContext(ctx).Model(&model.Claim{}).
		Scopes(scope.ClaimVisibility(p))
	q = claimPreloads(q)

	if f.FailureNodeID != nil {
		q = q.Where("claims.failure_node_id = ?", *f.FailureNodeID)
	}
	if f.RepairMethodID != nil {
		q = q.Where("claims.repair_method_id = ?", *f.RepairMethodID)
	}
	if f.ServiceCompanyID != nil {
		q = q.Where("claims.service_company_id = ?", *f.ServiceCompanyID)
	}
	q = s.machineSerialFilter(q, "claims", f.MachineSerial, f.MachineSerialLike)
	q = dateFilter(q, "claims.failure_date", f.Date, f.DateFrom, f.DateTo)

	var claims []model.Claim
	err := q.Order("claims.failure_date DESC, claims.id DESC").
		Scopes(f.Page.apply).
		Find(&claims).Error
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return claims, nil
}

func (s *gormStore) GetClaim(ctx context.Context, p *scope.Principal, id uint) (*model.Claim, error) {
	var claim model.Claim
	err := claimPreloads(s.db.WithContext(ctx).Model(&model.Claim{})).
		Scopes(scope.ClaimVisibility(p)).
		Where("claims.id = ?", id).
		First(&claim).Error
	if err != nil {
		return nil, translate(err)
	}
	return &claim, nil
}

func (s *gormStore) CreateClaim(ctx context.Context, p *scope.Principal, rec *model.Claim) error {
	if rec.MachineID == 0 {
		return validationErr("machine_id", "machine is required")
	}
	if rec.FailureDate.IsZero() {
		return validationErr("failure_date", "failure date is required")
	}
	if rec.FailureDescription == "" {
		return validationErr("failure_description", "failure description is required")
	}
	if rec.OperatingTime != nil && *rec.OperatingTime < 0 {
		return validationErr("operating_time", "operating time cannot be negative")
	}
	if rec.RecoveryDate != nil && !rec.RecoveryDate.IsZero() && rec.RecoveryDate.Before(rec.FailureDate.Time) {
		return validationErr("recovery_date", "recovery date cannot be before the failure date")
	}
	if err := s.requireCategory(ctx, rec.FailureNodeID, model.CategoryFailureNode, "failure_node_id"); err != nil {
		return err
	}
	if err := s.requireCategory(ctx, rec.RepairMethodID, model.CategoryRepairMethod, "repair_method_id"); err != nil {
		return err
	}

	var machine model.Machine
	if err := s.db.WithContext(ctx).First(&machine, rec.MachineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationErr("machine_id", "unknown machine")
		}
		return fmt.Errorf("load machine: %w", err)
	}

	serviceCompanyID, err := scope.ClaimCreate(p, &machine)
	if err != nil {
		return err
	}
	rec.ServiceCompanyID = serviceCompanyID
	rec.ServiceCompany = nil

	// Downtime is derived here, never taken from the payload.
	rec.RecomputeDowntime()

	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create claim: %w", err)
	}
	return claimPreloads(s.db.WithContext(ctx)).First(rec, rec.ID).Error
}

// --- Reference catalog ---

func (s *gormStore) ListReferences(ctx context.Context, f ReferenceFilter) ([]model.ReferenceItem, error) {
	q := s.db.WithContext(ctx).Model(&model.ReferenceItem{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Name != "" {
		q = q.Where("name = ?", f.Name)
	}

	var items []model.ReferenceItem
	if err := q.Order("category, name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	return items, nil
}

func (s *gormStore) GetReference(ctx context.Context, id uint) (*model.ReferenceItem, error) {
	var item model.ReferenceItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *gormStore) CreateReference(ctx context.Context, p *scope.Principal, item *model.ReferenceItem) error {
	if err := scope.ReferenceWrite(p); err != nil {
		return err
	}
	if !item.Category.Valid() {
		return validationErr("category", "unknown catalog category")
	}
	if item.Name == "" {
		return validationErr("name", "name is required")
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create reference: %w", err)
	}
	return nil
}

func (s *gormStore) UpdateReference(ctx context.Context, p *scope.Principal, id uint, patch ReferencePatch) (*model.ReferenceItem, error) {
	if err := scope.ReferenceWrite(p); err != nil {
		return nil, err
	}

	var item model.ReferenceItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}

	if patch.Category != nil {
		if !patch.Category.Valid() {
			return nil, validationErr("category", "unknown catalog category")
		}
		item.Category = *patch.Category
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, validationErr("name", "name is required")
		}
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update reference: %w", err)
	}
	return &item, nil
}

func (s *gormStore) DeleteReference(ctx context.Context, p *scope.Principal, id uint) error {
	if err := scope.ReferenceWrite(p); err != nil {
		return err
	}

	var item model.ReferenceItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return translate(err)
	}

	referenced, err := s.referenceInUse(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrStillReferenced
	}

	if err := s.db.WithContext(ctx).Delete(&model.ReferenceItem{}, id).Error; err != nil {
		return fmt.Errorf("delete reference: %w", err)
	}
	return nil
}

// referenceInUse reports whether any machine, maintenance record or
// claim still points at the catalog item.
func (s *gormStore) referenceInUse(ctx context.Context, id uint) (bool, error) {
	counts := []struct {
		model any
		where string
		args  []any
	}{
		{&model.Machine{},
			"machine_model_id = ? OR engine_model_id = ? OR transmission_model_id = ? OR drive_axle_model_id = ? OR steer_axle_model_id = ?",
			[]any{id, id, id, id, id}},
		{&model.Maintenance{},
			"maintenance_type_id = ? OR service_organization_id = ?",
			[]any{id, id}},
		{&model.Claim{},
			"failure_node_id = ? OR repair_method_id = ?",
			[]any{id, id}},
	}

	for _, c := range counts {
		var n int64
		if err := s.db.WithContext(ctx).Model(c.model).Where(c.where, c.args...).Count(&n).Error; err != nil {
			return false, fmt.Errorf("count references: %w", err)
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

// --- Helpers ---

// requireCategory rejects a catalog reference whose target is missing
// or belongs to a different category than the field allows.
func (s *gormStore) requireCategory(ctx context.Context, id uint, category model.Category, field string) error {
	if id == 0 {
		return validationErr(field, "reference is required")
	}
	var item model.ReferenceItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationErr(field, "unknown reference item")
		}
		return fmt.Errorf("load reference: %w", err)
	}
	if item.Category != category {
		return validationErr(field, fmt.Sprintf("reference item must belong to category %q", category))
	}
	return nil
}

// machineSerialFilter applies the exact / substring serial filters via a
// subquery so it composes with any role-scoping join already present.
func (s *gormStore) machineSerialFilter(q *gorm.DB, table, exact, like string) *gorm.DB {
	if exact != "" {
		sub := s.db.Model(&model.Machine{}).Select("id").Where("serial_number = ?", exact)
		q = q.Where(table+".machine_id IN (?)", sub)
	}
	if like != "" {
		sub := s.db.Model(&model.Machine{}).Select("id").Where("serial_number LIKE ?", "%"+like+"%")
		q = q.Where(table+".machine_id IN (?)", sub)
	}
	return q
}

func dateFilter(q *gorm.DB, column string, exact, from, to *model.Date) *gorm.DB {
	if exact != nil {
		q = q.Where(column+" = ?", *exact)
	}
	if from != nil {
		q = q.Where(column+" >= ?", *from)
	}
	if to != nil {
		q = q.Where(column+" <= ?", *to)
	}
	return q
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
