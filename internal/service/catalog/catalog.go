package catalog

import (
	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/Domenick1991/safaribooking/internal/store"
)

type (
	AgentService     = Service[domain.Agent, domain.AgentPatch]
	SupplierService  = Service[domain.Supplier, domain.SupplierPatch]
	ExcursionService = Service[domain.Excursion, domain.ExcursionPatch]
	VehicleService   = Service[domain.Vehicle, domain.VehiclePatch]
	GuestService     = Service[domain.Guest, domain.GuestPatch]
)

// Services bundles one catalog service per reference entity.
type Services struct {
	Agents     *AgentService
	Suppliers  *SupplierService
	Excursions *ExcursionService
	Vehicles   *VehicleService
	Guests     *GuestService
}

// NewServices wires catalog services over st. A nil producer disables events.
func NewServices(st *store.Store, producer Producer, topic string) Services {
	return Services{
		Agents:     NewService[domain.Agent, domain.AgentPatch]("agent", st.Agents, WithEvents[domain.Agent, domain.AgentPatch](producer, topic)),
		Suppliers:  NewService[domain.Supplier, domain.SupplierPatch]("supplier", st.Suppliers, WithEvents[domain.Supplier, domain.SupplierPatch](producer, topic)),
		Excursions: NewService[domain.Excursion, domain.ExcursionPatch]("excursion", st.Excursions, WithEvents[domain.Excursion, domain.ExcursionPatch](producer, topic)),
		Vehicles:   NewService[domain.Vehicle, domain.VehiclePatch]("vehicle", st.Vehicles, WithEvents[domain.Vehicle, domain.VehiclePatch](producer, topic)),
		Guests:     NewService[domain.Guest, domain.GuestPatch]("guest", st.Guests, WithEvents[domain.Guest, domain.GuestPatch](producer, topic)),
	}
}
