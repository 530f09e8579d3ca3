package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Primary keys are generated client side so sqlite and postgres behave the same.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error              { assignID(&u.ID); return nil }
func (r *Role) BeforeCreate(*gorm.DB) error              { assignID(&r.ID); return nil }
func (p *Permission) BeforeCreate(*gorm.DB) error        { assignID(&p.ID); return nil }
func (p *Product) BeforeCreate(*gorm.DB) error           { assignID(&p.ID); return nil }
func (w *Warehouse) BeforeCreate(*gorm.DB) error         { assignID(&w.ID); return nil }
func (s *Supplier) BeforeCreate(*gorm.DB) error          { assignID(&s.ID); return nil }
func (i *InvoiceReceiving) BeforeCreate(*gorm.DB) error  { assignID(&i.ID); return nil }
func (q *QualityControl) BeforeCreate(*gorm.DB) error    { assignID(&q.ID); return nil }
func (w *WarehouseApproval) BeforeCreate(*gorm.DB) error { assignID(&w.ID); return nil }
func (r *InventoryRecord) BeforeCreate(*gorm.DB) error   { assignID(&r.ID); return nil }
func (m *InventoryMovement) BeforeCreate(*gorm.DB) error { assignID(&m.ID); return nil }
func (n *Notification) BeforeCreate(*gorm.DB) error      { assignID(&n.ID); return nil }
func (a *AuditLog) BeforeCreate(*gorm.DB) error          { assignID(&a.ID); return nil }
