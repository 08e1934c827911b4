package entity

// Role es el conjunto cerrado de roles de la aplicación.
type Role string

const (
	RoleGerente  Role = "gerente"  // dueño de la planta, acceso total
	RoleAdmin    Role = "admin"    // administración y resolución de conflictos
	RoleCajero   Role = "cajero"   // caja de planta (canal PLANTA)
	RoleVendedor Role = "vendedor" // venta en ruta (canal RUTA, offline)
	RoleAuditor  Role = "auditor"  // solo lectura
)

// Capability es una capacidad concreta; se resuelve una vez por request en un
// authz.Context explícito (nada de estado global de usuario).
type Capability string

const (
	CapSalesCreate       Capability = "sales.create"
	CapSalesCancel       Capability = "sales.cancel"
	CapSalesMarkPaid     Capability = "sales.mark_paid"
	CapInventoryView     Capability = "inventory.view"
	CapInventoryAdjust   Capability = "inventory.adjust"
	CapProductionCreate  Capability = "production.create"
	CapSupplyManage      Capability = "supply.manage"
	CapSyncPush          Capability = "sync.push"
	CapSyncResolve       Capability = "sync.resolve"
	CapPricesView        Capability = "prices.view"
	CapReportsView       Capability = "reports.view"
)

var roleCapabilities = map[Role][]Capability{
	RoleGerente: {
		CapSalesCreate, CapSalesCancel, CapSalesMarkPaid,
		CapInventoryView, CapInventoryAdjust, CapProductionCreate,
		CapSupplyManage, CapSyncPush, CapSyncResolve,
		CapPricesView, CapReportsView,
	},
	RoleAdmin: {
		CapSalesCreate, CapSalesCancel, CapSalesMarkPaid,
		CapInventoryView, CapInventoryAdjust, CapProductionCreate,
		CapSupplyManage, CapSyncResolve, CapPricesView, CapReportsView,
	},
	RoleCajero: {
		CapSalesCreate, CapSalesMarkPaid, CapInventoryView,
		CapProductionCreate, CapPricesView,
	},
	RoleVendedor: {
		CapSalesCreate, CapSyncPush, CapPricesView,
	},
	RoleAuditor: {
		CapInventoryView, CapPricesView, CapReportsView,
	},
}

// Capabilities devuelve el conjunto de capacidades del rol.
func (r Role) Capabilities() []Capability {
	return roleCapabilities[r]
}

// CanAccessChannel indica si el rol puede vender en el canal dado.
func (r Role) CanAccessChannel(channel string) bool {
	switch r {
	case RoleGerente, RoleAdmin:
		return true
	case RoleCajero:
		return channel == ChannelPlant
	case RoleVendedor:
		return channel == ChannelRoute
	default:
		return false
	}
}

// Valid indica si el rol pertenece al conjunto conocido.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}
