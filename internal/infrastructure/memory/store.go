// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Lo usan los tests y el modo demo: mismas semánticas que el
// adaptador PostgreSQL, incluida la atomicidad de transacciones, que aquí se
// logra con snapshot del estado y restauración en caso de error.
package memory

import (
	"sync"

	"github.com/tu-usuario/planta-pos/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex // protege los mapas
	txMu sync.Mutex // serializa transacciones (equivale al lock de fila)
	seq  int64

	products        map[string]entity.Product
	supplies        map[string]entity.Supply
	prices          map[string]entity.Price
	sales           map[string]entity.Sale
	saleItems       map[string][]entity.SaleItem
	movements       []entity.InventoryMovement
	supplyMovements []entity.SupplyMovement
	syncQueue       map[string]entity.SyncQueueEntry
	customers       map[string]entity.Customer
	users           map[string]entity.User
	productions     map[string]entity.ProductionRecord
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:    make(map[string]entity.Product),
		supplies:    make(map[string]entity.Supply),
		prices:      make(map[string]entity.Price),
		sales:       make(map[string]entity.Sale),
		saleItems:   make(map[string][]entity.SaleItem),
		syncQueue:   make(map[string]entity.SyncQueueEntry),
		customers:   make(map[string]entity.Customer),
		users:       make(map[string]entity.User),
		productions: make(map[string]entity.ProductionRecord),
	}
}

// Seed helpers para tests y modo demo.

// PutProduct inserta o reemplaza un producto.
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// PutSupply inserta o reemplaza un insumo.
func (s *Store) PutSupply(sp entity.Supply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supplies[sp.ID] = sp
}

// PutPrice inserta o reemplaza un precio.
func (s *Store) PutPrice(p entity.Price) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[p.ID] = p
}

// PutCustomer inserta o reemplaza un cliente.
func (s *Store) PutCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
}

// PutUser inserta o reemplaza un usuario.
func (s *Store) PutUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// nextSeq asigna la siguiente secuencia de inserción. Caller sostiene mu.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// snapshot copia el estado completo. Caller sostiene mu.
func (s *Store) snapshot() *snapshot {
	items := make(map[string][]entity.SaleItem, len(s.saleItems))
	for k, v := range s.saleItems {
		items[k] = append([]entity.SaleItem(nil), v...)
	}
	return &snapshot{
		seq:             s.seq,
		products:        cloneMap(s.products),
		supplies:        cloneMap(s.supplies),
		prices:          cloneMap(s.prices),
		sales:           cloneMap(s.sales),
		saleItems:       items,
		movements:       append([]entity.InventoryMovement(nil), s.movements...),
		supplyMovements: append([]entity.SupplyMovement(nil), s.supplyMovements...),
		syncQueue:       cloneMap(s.syncQueue),
		customers:       cloneMap(s.customers),
		users:           cloneMap(s.users),
		productions:     cloneMap(s.productions),
	}
}

// restore vuelve al estado del snapshot. Caller sostiene mu.
func (s *Store) restore(snap *snapshot) {
	s.seq = snap.seq
	s.products = snap.products
	s.supplies = snap.supplies
	s.prices = snap.prices
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.movements = snap.movements
	s.supplyMovements = snap.supplyMovements
	s.syncQueue = snap.syncQueue
	s.customers = snap.customers
	s.users = snap.users
	s.productions = snap.productions
}

type snapshot struct {
	seq             int64
	products        map[string]entity.Product
	supplies        map[string]entity.Supply
	prices          map[string]entity.Price
	sales           map[string]entity.Sale
	saleItems       map[string][]entity.SaleItem
	movements       []entity.InventoryMovement
	supplyMovements []entity.SupplyMovement
	syncQueue       map[string]entity.SyncQueueEntry
	customers       map[string]entity.Customer
	users           map[string]entity.User
	productions     map[string]entity.ProductionRecord
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
