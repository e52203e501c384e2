package backup

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-pos-core/internal/domains/catalog/domain"
	customerdomain "github.com/Apurer/go-pos-core/internal/domains/customers/domain"
	orderdomain "github.com/Apurer/go-pos-core/internal/domains/orders/domain"
)

// FormatVersion is bumped whenever the document layout changes incompatibly.
const FormatVersion = 1

// Document is the serialized form of every store.
type Document struct {
	Version    int              `json:"version" yaml:"version"`
	SnapshotID uuid.UUID        `json:"snapshotId" yaml:"snapshotId"`
	ExportedAt time.Time        `json:"exportedAt" yaml:"exportedAt"`
	Customers  []CustomerRecord `json:"customers" yaml:"customers"`
	Items      []ItemRecord     `json:"items" yaml:"items"`
	Orders     []OrderRecord    `json:"orders" yaml:"orders"`
}

type CustomerRecord struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Contact   string    `json:"contact" yaml:"contact"`
	Address   string    `json:"address,omitempty" yaml:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"`
}

type ItemRecord struct {
	ID        int64           `json:"id" yaml:"id"`
	Code      string          `json:"code" yaml:"code"`
	Name      string          `json:"name" yaml:"name"`
	Price     decimal.Decimal `json:"price" yaml:"price"`
	Stock     int             `json:"stock" yaml:"stock"`
	CreatedAt time.Time       `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"`
}

type OrderLineRecord struct {
	ItemID    int64           `json:"itemId" yaml:"itemId"`
	Code      string          `json:"code" yaml:"code"`
	Name      string          `json:"name" yaml:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice" yaml:"unitPrice"`
	Quantity  int             `json:"quantity" yaml:"quantity"`
}

type OrderRecord struct {
	ID         int64             `json:"id" yaml:"id"`
	CustomerID int64             `json:"customerId" yaml:"customerId"`
	CreatedAt  time.Time         `json:"createdAt" yaml:"createdAt"`
	Lines      []OrderLineRecord `json:"lines" yaml:"lines"`
	Subtotal   decimal.Decimal   `json:"subtotal" yaml:"subtotal"`
	Tax        decimal.Decimal   `json:"tax" yaml:"tax"`
	Total      decimal.Decimal   `json:"total" yaml:"total"`
	Status     string            `json:"status" yaml:"status"`
}

func fromCustomer(c *customerdomain.Customer) CustomerRecord {
	return CustomerRecord{
		ID:        c.ID,
		Name:      c.Name,
		Contact:   c.Contact,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r CustomerRecord) toDomain() *customerdomain.Customer {
	return &customerdomain.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Contact:   r.Contact,
		Address:   r.Address,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func fromItem(i *catalogdomain.Item) ItemRecord {
	return ItemRecord{
		ID:        i.ID,
		Code:      i.Code,
		Name:      i.Name,
		Price:     i.Price,
		Stock:     i.Stock,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func (r ItemRecord) toDomain() *catalogdomain.Item {
	return &catalogdomain.Item{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		Price:     r.Price,
		Stock:     r.Stock,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func fromOrder(o *orderdomain.Order) OrderRecord {
	lines := make([]OrderLineRecord, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, OrderLineRecord{
			ItemID:    line.ItemID,
			Code:      line.Code,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	return OrderRecord{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		CreatedAt:  o.CreatedAt,
		Lines:      lines,
		Subtotal:   o.Subtotal,
		Tax:        o.Tax,
		Total:      o.Total,
		Status:     string(o.Status),
	}
}

func (r OrderRecord) toDomain() *orderdomain.Order {
	lines := make([]orderdomain.Line, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, orderdomain.Line{
			ItemID:    line.ItemID,
			Code:      line.Code,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	return &orderdomain.Order{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		CreatedAt:  r.CreatedAt,
		Lines:      lines,
		Subtotal:   r.Subtotal,
		Tax:        r.Tax,
		Total:      r.Total,
		Status:     orderdomain.Status(r.Status),
	}
}
