package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warehouse/internal/cache"
	"warehouse/internal/database/dbtest"
	"warehouse/internal/handler"
	"warehouse/internal/logger"
	"warehouse/internal/middleware"
	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "handler-test-secret"

type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Meta       *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB

	product   model.Product
	warehouse model.Warehouse
	supplier  model.Supplier

	tokens map[string]string
	ids    map[string]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	db := dbtest.Open(t)
	log := logger.Discard()

	txManager := repository.NewTransactionManager(db)
	roleRepo := repository.NewRoleRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	invoiceRepo := repository.NewInvoiceReceivingRepository(db)
	qcRepo := repository.NewQualityControlRepository(db)
	permCache := cache.NewMemoryPermissionCache(time.Minute)

	audit := service.NewAuditService(repository.NewAuditRepository(db), log)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(db), nil, log)
	inventory := service.NewInventoryService(repository.NewInventoryRepository(db), productRepo, warehouseRepo, txManager, audit, log)
	roles := service.NewRoleService(roleRepo, txManager, permCache)
	users := service.NewUserService(userRepo, roleRepo, audit, testSecret, time.Hour)
	qc := service.NewQualityControlService(qcRepo, repository.NewQualityControlStatsRepository(db), invoiceRepo, productRepo, userRepo, txManager, audit, notifications, log)
	wa := service.NewWarehouseApprovalService(repository.NewWarehouseApprovalRepository(db), repository.NewWarehouseApprovalStatsRepository(db), qcRepo, userRepo, inventory, txManager, audit, notifications, log)

	require.NoError(t, roles.SeedDefaultRolesAndPermissions(ctx))

	auth := middleware.NewAuthenticator(testSecret, roleRepo, permCache, log)
	router := gin.New()
	handler.Register(router.Group(""), auth,
		handler.NewUserHandler(users, false),
		handler.NewRoleHandler(roles),
		handler.NewCatalogHandler(service.NewCatalogService(productRepo, warehouseRepo, supplierRepo)),
		handler.NewInvoiceReceivingHandler(service.NewInvoiceReceivingService(invoiceRepo, productRepo, supplierRepo, warehouseRepo, txManager, audit)),
		handler.NewQualityControlHandler(qc),
		handler.NewWarehouseApprovalHandler(wa),
		handler.NewInventoryHandler(inventory),
		handler.NewNotificationHandler(notifications),
		handler.NewAuditHandler(audit),
	)

	s := &testServer{router: router, db: db, tokens: map[string]string{}, ids: map[string]string{}}
	s.product = model.Product{SKU: "MSK-N95", Name: "N95 mask", Unit: "box"}
	s.warehouse = model.Warehouse{Code: "WH-HN", Name: "Ha Noi DC"}
	s.supplier = model.Supplier{Name: "Vinamed"}
	require.NoError(t, db.Create(&s.product).Error)
	require.NoError(t, db.Create(&s.warehouse).Error)
	require.NoError(t, db.Create(&s.supplier).Error)

	admin := service.Actor{Role: model.RoleAdmin}
	for _, role := range []string{model.RoleAdmin, model.RoleQCInspector, model.RoleViewer} {
		user, err := users.CreateUser(ctx, admin, service.CreateUserRequest{
			Username: role,
			Email:    role + "@example.com",
			Password: "password1",
			Role:     role,
		})
		require.NoError(t, err)
		tok, err := users.Login(ctx, service.LoginUserRequest{Email: role + "@example.com", Password: "password1"})
		require.NoError(t, err)
		s.tokens[role] = tok.Token
		s.ids[role] = user.ID.String()
	}
	return s
}

func (s *testServer) do(t *testing.T, role, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok := s.tokens[role]; tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func (s *testServer) createInvoice(t *testing.T, number string, qty int) string {
	t.Helper()
	w, env := s.do(t, model.RoleAdmin, http.MethodPost, "/api/invoice-receiving", map[string]interface{}{
		"invoice_number": number,
		"supplier_id":    s.supplier.ID.String(),
		"warehouse_id":   s.warehouse.ID.String(),
		"products": []map[string]interface{}{{
			"product_id":   s.product.ID.String(),
			"batch_number": "LOT-" + number,
			"received_qty": qty,
			"unit_price":   "3.20",
		}},
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	return decode[model.InvoiceReceiving](t, env.Data).ID.String()
}

func TestAuthenticationAndPermissions(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, "", http.MethodGet, "/api/quality-control", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)

	w, _ = s.do(t, model.RoleViewer, http.MethodPost, "/api/quality-control", map[string]string{"invoice_receiving_id": s.ids[model.RoleViewer]})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, model.RoleViewer, http.MethodGet, "/api/quality-control", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, model.RoleViewer, http.MethodGet, "/api/audit-logs", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(t, model.RoleQCInspector, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[service.MeResponse](t, env.Data)
	assert.Contains(t, me.Permissions, model.PermQCUpdate)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, "", http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, env.Message)

	w, _ = s.do(t, "", http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "password1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "access_token=")
}

func TestInspectionErrorMapping(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, model.RoleAdmin, http.MethodGet, "/api/quality-control/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, model.RoleAdmin, http.MethodGet, "/api/quality-control/"+s.ids[model.RoleAdmin], nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, model.RoleAdmin, http.MethodGet, "/api/warehouse-approval/statistics?start_date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	invoiceID := s.createInvoice(t, "E-1", 5)
	body := map[string]string{"invoice_receiving_id": invoiceID}
	w, _ = s.do(t, model.RoleAdmin, http.MethodPost, "/api/quality-control", body)
	require.Equal(t, http.StatusCreated, w.Code)
	w, env := s.do(t, model.RoleAdmin, http.MethodPost, "/api/quality-control", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "duplicate")
}

func TestReceivingWorkflowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	invoiceID := s.createInvoice(t, "F-1", 100)
	inspector := s.ids[model.RoleQCInspector]

	w, env := s.do(t, model.RoleAdmin, http.MethodPost, "/api/quality-control", map[string]interface{}{
		"invoice_receiving_id": invoiceID,
		"assigned_to":          inspector,
		"priority":             model.PriorityHigh,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	qc := decode[model.QualityControl](t, env.Data)
	qcPath := "/api/quality-control/" + qc.ID.String()

	w, _ = s.do(t, model.RoleAdmin, http.MethodPost, qcPath+"/approve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "approve from pending")

	w, env = s.do(t, model.RoleQCInspector, http.MethodGet, qcPath+"/actions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	allowed := decode[map[string][]string](t, env.Data)
	assert.Equal(t, []string{"start", "update_lines", "submit"}, allowed["actions"])

	w, _ = s.do(t, model.RoleQCInspector, http.MethodPost, qcPath+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = s.do(t, model.RoleQCInspector, http.MethodPut, qcPath, map[string]interface{}{
		"products": []map[string]interface{}{{
			"product_id": s.product.ID.String(),
			"passed_qty": 100,
			"qc_result":  model.QCResultPassed,
		}},
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	w, _ = s.do(t, model.RoleQCInspector, http.MethodPost, qcPath+"/submit", map[string]string{"general_remarks": "all good"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, model.RoleQCInspector, http.MethodPost, qcPath+"/approve", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, env = s.do(t, model.RoleAdmin, http.MethodPost, qcPath+"/approve", map[string]string{"approval_remarks": "ok"})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	assert.Equal(t, model.InspectionApproved, decode[model.QualityControl](t, env.Data).Status)

	w, env = s.do(t, model.RoleAdmin, http.MethodPost, "/api/warehouse-approval", map[string]string{"quality_control_id": qc.ID.String()})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	waPath := "/api/warehouse-approval/" + decode[model.WarehouseApproval](t, env.Data).ID.String()

	w, _ = s.do(t, model.RoleAdmin, http.MethodPost, waPath+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = s.do(t, model.RoleAdmin, http.MethodPost, waPath+"/approve", nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	w, env = s.do(t, model.RoleViewer, http.MethodGet, "/api/inventory?product_id="+s.product.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	records := decode[[]model.InventoryRecord](t, env.Data)
	require.Len(t, records, 1)
	assert.Equal(t, 100, records[0].CurrentStock)
	assert.Equal(t, int64(1), env.Meta.Total)

	w, env = s.do(t, model.RoleQCInspector, http.MethodGet, "/api/notifications?unread=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), env.Meta.Total, "assignment and approval")

	w, _ = s.do(t, model.RoleAdmin, http.MethodGet, "/api/inventory/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestBulkAssignOverHTTP(t *testing.T) {
	s := newTestServer(t)
	var ids []string
	for i := 0; i < 3; i++ {
		invoiceID := s.createInvoice(t, fmt.Sprintf("B-%d", i), 10)
		w, env := s.do(t, model.RoleAdmin, http.MethodPost, "/api/quality-control", map[string]string{"invoice_receiving_id": invoiceID})
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, decode[model.QualityControl](t, env.Data).ID.String())
	}

	w, env := s.do(t, model.RoleAdmin, http.MethodPost, "/api/quality-control/bulk-assign", map[string]interface{}{
		"ids":         ids,
		"assigned_to": s.ids[model.RoleQCInspector],
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	result := decode[service.BulkAssignResult](t, env.Data)
	assert.Equal(t, 3, result.Succeeded)

	w, env = s.do(t, model.RoleQCInspector, http.MethodGet, "/api/quality-control/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[service.Dashboard[model.QualityControl]](t, env.Data)
	assert.Equal(t, int64(3), dash.AssignedToMe)

	w, _ = s.do(t, model.RoleQCInspector, http.MethodPost, "/api/quality-control/bulk-assign", map[string]interface{}{
		"ids":         ids,
		"assigned_to": s.ids[model.RoleQCInspector],
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCatalogOverHTTP(t *testing.T) {
	s := newTestServer(t)
	product := map[string]string{"sku": "GWN-ISO-L", "name": "Isolation gown L", "unit": "piece"}

	w, _ := s.do(t, model.RoleViewer, http.MethodPost, "/api/products", product)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(t, model.RoleAdmin, http.MethodPost, "/api/products", product)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	w, _ = s.do(t, model.RoleAdmin, http.MethodPost, "/api/products", product)
	assert.Equal(t, http.StatusBadRequest, w.Code, "duplicate sku")

	w, env = s.do(t, model.RoleViewer, http.MethodGet, "/api/products?search=gown", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decode[[]model.Product](t, env.Data)
	require.Len(t, products, 1)
	assert.Equal(t, "GWN-ISO-L", products[0].SKU)

	w, env = s.do(t, model.RoleViewer, http.MethodGet, "/api/warehouses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Warehouse](t, env.Data), 1)

	w, _ = s.do(t, model.RoleAdmin, http.MethodPost, "/api/suppliers", map[string]string{"name": "Medi Co", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
