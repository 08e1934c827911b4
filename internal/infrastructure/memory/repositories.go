package memory

import (
	"sort"
	"time"

	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.SupplyRepository = (*SupplyRepo)(nil)
var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)
var _ repository.SupplyMovementRepository = (*SupplyMovementRepo)(nil)
var _ repository.PriceRepository = (*PriceRepo)(nil)
var _ repository.SaleRepository = (*SaleRepo)(nil)
var _ repository.SyncQueueRepository = (*SyncQueueRepo)(nil)
var _ repository.CustomerRepository = (*CustomerRepo)(nil)
var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ store *Store }

// NewProductRepository construye el repo sobre el store.
func NewProductRepository(store *Store) *ProductRepo { return &ProductRepo{store: store} }

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate en memoria no bloquea fila: la serialización la da el txMu del
// runner, que admite una transacción a la vez.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) ListActive() ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.store.products {
		if p.IsActive {
			cp := p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// SupplyRepo insumos en memoria.
type SupplyRepo struct{ store *Store }

// NewSupplyRepository construye el repo sobre el store.
func NewSupplyRepository(store *Store) *SupplyRepo { return &SupplyRepo{store: store} }

func (r *SupplyRepo) GetByID(id string) (*entity.Supply, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.supplies[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SupplyRepo) GetForUpdate(id string) (*entity.Supply, error) {
	return r.GetByID(id)
}

func (r *SupplyRepo) listSorted(keep func(entity.Supply) bool) []*entity.Supply {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.Supply
	for _, s := range r.store.supplies {
		if keep(s) {
			cp := s
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (r *SupplyRepo) ListActive() ([]*entity.Supply, error) {
	return r.listSorted(func(s entity.Supply) bool { return s.IsActive }), nil
}

func (r *SupplyRepo) ListByLinkedProduct(productID string) ([]*entity.Supply, error) {
	return r.listSorted(func(s entity.Supply) bool {
		return s.IsActive && s.LinkedProductID != nil && *s.LinkedProductID == productID
	}), nil
}

func (r *SupplyRepo) ListKitComponents() ([]*entity.Supply, error) {
	return r.listSorted(func(s entity.Supply) bool { return s.IsActive && s.KitComponent }), nil
}

// InventoryMovementRepo libro de productos en memoria.
type InventoryMovementRepo struct{ store *Store }

// NewInventoryMovementRepository construye el repo sobre el store.
func NewInventoryMovementRepository(store *Store) *InventoryMovementRepo {
	return &InventoryMovementRepo{store: store}
}

func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	movement.Seq = r.store.nextSeq()
	r.store.movements = append(r.store.movements, *movement)
	return nil
}

func (r *InventoryMovementRepo) LastByProduct(productID string) (*entity.InventoryMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var last *entity.InventoryMovement
	for i := range r.store.movements {
		m := r.store.movements[i]
		if m.ProductID != productID {
			continue
		}
		if last == nil || ledgerAfter(m.CreatedAt, m.Seq, last.CreatedAt, last.Seq) {
			cp := m
			last = &cp
		}
	}
	return last, nil
}

func (r *InventoryMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.InventoryMovement
	for i := range r.store.movements {
		m := r.store.movements[i]
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return ledgerAfter(list[i].CreatedAt, list[i].Seq, list[j].CreatedAt, list[j].Seq)
	})
	return page(list, limit, offset), nil
}

// SupplyMovementRepo libro de insumos en memoria.
type SupplyMovementRepo struct{ store *Store }

// NewSupplyMovementRepository construye el repo sobre el store.
func NewSupplyMovementRepository(store *Store) *SupplyMovementRepo {
	return &SupplyMovementRepo{store: store}
}

func (r *SupplyMovementRepo) Create(movement *entity.SupplyMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	movement.Seq = r.store.nextSeq()
	r.store.supplyMovements = append(r.store.supplyMovements, *movement)
	return nil
}

func (r *SupplyMovementRepo) LastBySupply(supplyID string) (*entity.SupplyMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var last *entity.SupplyMovement
	for i := range r.store.supplyMovements {
		m := r.store.supplyMovements[i]
		if m.SupplyID != supplyID {
			continue
		}
		if last == nil || ledgerAfter(m.CreatedAt, m.Seq, last.CreatedAt, last.Seq) {
			cp := m
			last = &cp
		}
	}
	return last, nil
}

func (r *SupplyMovementRepo) ListBySupply(supplyID string, from, to *time.Time, limit, offset int) ([]*entity.SupplyMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.SupplyMovement
	for i := range r.store.supplyMovements {
		m := r.store.supplyMovements[i]
		if m.SupplyID != supplyID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return ledgerAfter(list[i].CreatedAt, list[i].Seq, list[j].CreatedAt, list[j].Seq)
	})
	return page(list, limit, offset), nil
}

// PriceRepo precios en memoria.
type PriceRepo struct{ store *Store }

// NewPriceRepository construye el repo sobre el store.
func NewPriceRepository(store *Store) *PriceRepo { return &PriceRepo{store: store} }

func (r *PriceRepo) GetByID(id string) (*entity.Price, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.prices[id]
	if !ok {
		return nil, nil
	}
	cp := p
	cp.Roles = append([]entity.Role(nil), p.Roles...)
	return &cp, nil
}

func (r *PriceRepo) ListEligible(role entity.Role, channel, productID string, now time.Time) ([]*entity.Price, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.Price
	for _, p := range r.store.prices {
		if productID != "" && p.ProductID != productID {
			continue
		}
		cp := p
		cp.Roles = append([]entity.Role(nil), p.Roles...)
		if !cp.EligibleFor(role, channel, now) {
			continue
		}
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Amount.LessThan(list[j].Amount) })
	return list, nil
}

// SaleRepo ventas en memoria.
type SaleRepo struct{ store *Store }

// NewSaleRepository construye el repo sobre el store.
func NewSaleRepository(store *Store) *SaleRepo { return &SaleRepo{store: store} }

func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sales {
		if s.InvoiceNumber == sale.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *sale
	cp.Items = nil // los ítems viven en su propia colección
	r.store.sales[sale.ID] = cp
	return nil
}

func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.saleItems[item.SaleID] = append(r.store.saleItems[item.SaleID], *item)
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	items := r.store.saleItems[saleID]
	out := make([]*entity.SaleItem, 0, len(items))
	for i := range items {
		cp := items[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *SaleRepo) CountByChannelBetween(channel string, from, to time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, s := range r.store.sales {
		if s.Channel == channel && !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *SaleRepo) UpdateStatus(id, status string) error {
	return r.update(id, func(s *entity.Sale) { s.Status = status })
}

func (r *SaleRepo) UpdatePaymentStatus(id, paymentStatus string) error {
	return r.update(id, func(s *entity.Sale) { s.PaymentStatus = paymentStatus })
}

func (r *SaleRepo) UpdateSyncStatus(id, syncStatus string) error {
	return r.update(id, func(s *entity.Sale) { s.SyncStatus = syncStatus })
}

func (r *SaleRepo) update(id string, apply func(*entity.Sale)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	apply(&s)
	s.UpdatedAt = time.Now()
	r.store.sales[id] = s
	return nil
}

func (r *SaleRepo) ListOverdueUnpaid(now time.Time) ([]*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.Sale
	for _, s := range r.store.sales {
		if s.PaymentMethod != entity.PaymentCredit || s.PaymentStatus != entity.PaymentStatusUnpaid {
			continue
		}
		if s.Status != entity.SaleStatusCompleted || s.DueDate == nil || !s.DueDate.Before(now) {
			continue
		}
		cp := s
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].DueDate.Before(*list[j].DueDate) })
	return list, nil
}

// SyncQueueRepo cola de sincronización en memoria.
type SyncQueueRepo struct{ store *Store }

// NewSyncQueueRepository construye el repo sobre el store.
func NewSyncQueueRepository(store *Store) *SyncQueueRepo { return &SyncQueueRepo{store: store} }

func (r *SyncQueueRepo) Create(entry *entity.SyncQueueEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.syncQueue[entry.ID] = *entry
	return nil
}

func (r *SyncQueueRepo) GetByID(id string) (*entity.SyncQueueEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.syncQueue[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *SyncQueueRepo) Update(entry *entity.SyncQueueEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.syncQueue[entry.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.syncQueue[entry.ID] = *entry
	return nil
}

func (r *SyncQueueRepo) ListByStatus(status string) ([]*entity.SyncQueueEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.SyncQueueEntry
	for _, e := range r.store.syncQueue {
		if e.Status == status {
			cp := e
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ store *Store }

// NewCustomerRepository construye el repo sobre el store.
func NewCustomerRepository(store *Store) *CustomerRepo { return &CustomerRepo{store: store} }

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) SetBlacklisted(id string, reason string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.IsBlacklisted = true
	c.BlacklistReason = reason
	c.UpdatedAt = time.Now()
	r.store.customers[id] = c
	return nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ store *Store }

// NewUserRepository construye el repo sobre el store.
func NewUserRepository(store *Store) *UserRepo { return &UserRepo{store: store} }

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

// ProductionRepo registros de producción en memoria.
type ProductionRepo struct{ store *Store }

// NewProductionRepository construye el repo sobre el store.
func NewProductionRepository(store *Store) *ProductionRepo { return &ProductionRepo{store: store} }

func (r *ProductionRepo) Create(record *entity.ProductionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.productions[record.ID] = *record
	return nil
}

func (r *ProductionRepo) GetByID(id string) (*entity.ProductionRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.productions[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *ProductionRepo) ListBetween(from, to time.Time) ([]*entity.ProductionRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.ProductionRecord
	for _, rec := range r.store.productions {
		if rec.MachineOnAt.Before(from) || !rec.MachineOnAt.Before(to) {
			continue
		}
		cp := rec
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MachineOnAt.After(list[j].MachineOnAt) })
	return list, nil
}

// ledgerAfter indica si (t1, seq1) va después de (t2, seq2) en orden de libro.
func ledgerAfter(t1 time.Time, seq1 int64, t2 time.Time, seq2 int64) bool {
	if t1.Equal(t2) {
		return seq1 > seq2
	}
	return t1.After(t2)
}

func page[T any](list []*T, limit, offset int) []*T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
