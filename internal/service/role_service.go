package service

import (
	"context"
	"fmt"
	"sort"

	"warehouse/internal/cache"
	"warehouse/internal/model"
	"warehouse/internal/repository"
)

type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	IsSystem    bool                 `json:"is_system"`
	Permissions []PermissionResponse `json:"permissions"`
	CreatedAt   string               `json:"created_at"`
}

type PermissionResponse struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	SeedDefaultRolesAndPermissions(ctx context.Context) error
}

type roleService struct {
	repo      repository.RoleRepository
	txManager repository.TransactionManager
	permCache cache.PermissionCache
}

func NewRoleService(repo repository.RoleRepository, txManager repository.TransactionManager, permCache cache.PermissionCache) RoleService {
	return &roleService{repo: repo, txManager: txManager, permCache: permCache}
}

func (s *roleService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, toRoleResponse(r))
	}
	return res, nil
}

var defaultPermissions = []model.Permission{
	{Code: model.PermQCCreate, Name: "Create quality control inspections", Group: "quality_control"},
	{Code: model.PermQCRead, Name: "View quality control inspections", Group: "quality_control"},
	{Code: model.PermQCUpdate, Name: "Record quality control results", Group: "quality_control"},
	{Code: model.PermQCApprove, Name: "Approve or reject quality control", Group: "quality_control"},
	{Code: model.PermQCAssign, Name: "Assign quality control inspections", Group: "quality_control"},

	{Code: model.PermWACreate, Name: "Create warehouse approvals", Group: "warehouse_approval"},
	{Code: model.PermWARead, Name: "View warehouse approvals", Group: "warehouse_approval"},
	{Code: model.PermWAUpdate, Name: "Record storage inspection results", Group: "warehouse_approval"},
	{Code: model.PermWAApprove, Name: "Approve or reject warehouse approvals", Group: "warehouse_approval"},
	{Code: model.PermWAAssign, Name: "Assign warehouse approvals", Group: "warehouse_approval"},

	{Code: model.PermInventoryRead, Name: "View inventory", Group: "inventory"},
	{Code: model.PermInventoryCreate, Name: "Seed inventory records", Group: "inventory"},
	{Code: model.PermInventoryExport, Name: "Export inventory", Group: "inventory"},

	{Code: model.PermInvoiceRead, Name: "View invoice receivings", Group: "invoice_receiving"},
	{Code: model.PermInvoiceCreate, Name: "Record invoice receivings", Group: "invoice_receiving"},

	{Code: model.PermCatalogRead, Name: "View products, warehouses and suppliers", Group: "catalog"},
	{Code: model.PermCatalogWrite, Name: "Manage products, warehouses and suppliers", Group: "catalog"},

	{Code: model.PermUsersRead, Name: "View users", Group: "users"},
	{Code: model.PermUsersCreate, Name: "Create users", Group: "users"},

	{Code: model.PermAuditRead, Name: "View audit logs", Group: "audit"},
}

// defaultRoles maps each built-in role to its permission codes. A nil list means all.
var defaultRoles = map[string]struct {
	Description string
	PermCodes   []string
}{
	model.RoleAdmin: {
		Description: "Administrator with every permission",
	},
	model.RoleQCManager: {
		Description: "Plans, assigns and decides quality control inspections",
		PermCodes: []string{
			model.PermQCCreate, model.PermQCRead, model.PermQCUpdate, model.PermQCApprove, model.PermQCAssign,
			model.PermWARead, model.PermInvoiceRead, model.PermInventoryRead, model.PermCatalogRead, model.PermUsersRead,
		},
	},
	model.RoleQCInspector: {
		Description: "Inspects received goods",
		PermCodes: []string{
			model.PermQCRead, model.PermQCUpdate, model.PermInvoiceRead, model.PermCatalogRead,
		},
	},
	model.RoleWarehouseManager: {
		Description: "Plans, assigns and decides storage approvals",
		PermCodes: []string{
			model.PermWACreate, model.PermWARead, model.PermWAUpdate, model.PermWAApprove, model.PermWAAssign,
			model.PermQCRead, model.PermInvoiceRead, model.PermInvoiceCreate,
			model.PermInventoryRead, model.PermInventoryCreate, model.PermInventoryExport,
			model.PermCatalogRead, model.PermCatalogWrite, model.PermUsersRead,
		},
	},
	model.RoleWarehouseStaff: {
		Description: "Receives goods and inspects storage placement",
		PermCodes: []string{
			model.PermWARead, model.PermWAUpdate, model.PermInvoiceRead, model.PermInvoiceCreate,
			model.PermInventoryRead, model.PermCatalogRead,
		},
	},
	model.RoleViewer: {
		Description: "Read-only access",
		PermCodes: []string{
			model.PermQCRead, model.PermWARead, model.PermInventoryRead, model.PermInvoiceRead, model.PermCatalogRead,
		},
	},
}

// SeedDefaultRolesAndPermissions creates the default permissions and roles, resetting
// built-in role grants to their defaults. It is safe to run repeatedly.
func (s *roleService) SeedDefaultRolesAndPermissions(ctx context.Context) error {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		permByCode := make(map[string]model.Permission, len(defaultPermissions))
		for _, def := range defaultPermissions {
			p := def
			if err := s.repo.UpsertPermission(txCtx, &p); err != nil {
				return fmt.Errorf("failed to seed permission '%s': %w", p.Code, err)
			}
			permByCode[p.Code] = p
		}

		names := make([]string, 0, len(defaultRoles))
		for name := range defaultRoles {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			def := defaultRoles[name]
			role := &model.Role{Name: name, Description: def.Description, IsSystem: true}
			if err := s.repo.FindOrCreateRole(txCtx, role); err != nil {
				return fmt.Errorf("failed to seed role '%s': %w", name, err)
			}

			var perms []model.Permission
			if def.PermCodes == nil {
				for _, p := range defaultPermissions {
					perms = append(perms, permByCode[p.Code])
				}
			} else {
				for _, code := range def.PermCodes {
					perms = append(perms, permByCode[code])
				}
			}
			if err := s.repo.ReplacePermissions(txCtx, role, perms); err != nil {
				return fmt.Errorf("failed to assign permissions to role '%s': %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.permCache.Invalidate(ctx, "")
}

// --- Helpers ---

func toRoleResponse(r model.Role) RoleResponse {
	perms := make([]PermissionResponse, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, PermissionResponse{
			ID:    p.ID.String(),
			Code:  p.Code,
			Name:  p.Name,
			Group: p.Group,
		})
	}

	return RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		Permissions: perms,
		CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
