package models

// Role is the closed set of employee roles. Anything else is denied everywhere.
type Role string

const (
	RoleManager   Role = "MANAGER"
	RoleAdmin     Role = "ADMIN"
	RoleSales     Role = "SALES"
	RoleWarehouse Role = "WAREHOUSE"
)

// Roles lists every valid role, in decreasing order of scope.
var Roles = []Role{RoleManager, RoleAdmin, RoleSales, RoleWarehouse}

// PaymentMethod - how a sale was paid for.
type PaymentMethod string

const (
	PayCash     PaymentMethod = "CASH"
	PayCard     PaymentMethod = "CARD"
	PayTransfer PaymentMethod = "TRANSFER"
)

// LogType classifies an inventory ledger entry.
type LogType string

const (
	LogEntry      LogType = "ENTRY"      // stock received
	LogSale       LogType = "SALE"       // stock sold at the POS
	LogAdjustment LogType = "ADJUSTMENT" // manual correction / issue
	LogDeletion   LogType = "DELETION"   // product retired, nets stock to zero
)

// Product - the inventory. Stock is a float because products sold by
// weight or volume (KG, L) move in fractional quantities.
type Product struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Price            float64 `json:"price"`
	Cost             float64 `json:"cost"`
	Stock            float64 `json:"stock"`
	MinStock         float64 `json:"minStock"`
	Category         string  `json:"category"`
	SupplierID       string  `json:"supplierId"`
	MeasurementUnit  string  `json:"measurementUnit"` // UNIT, KG, G, L, ML, M
	MeasurementValue float64 `json:"measurementValue"`
	Image            string  `json:"image,omitempty"` // base64, owned by the UI
}

// Supplier - who we buy from.
type Supplier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// Customer - who we sell to.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"taxId"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Employee - the person operating the system. Password holds the credential
// digest; legacy installations may still carry a plaintext value here until
// their first successful login upgrades it.
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone"`
	Email    string `json:"email"` // login identifier, unique, case-insensitive
	Password string `json:"password,omitempty"`
}

// CartItem - one line of a sale or quotation. UnitPrice and Discount are
// snapshots taken when the line was added, so later price edits do not
// rewrite history.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  float64 `json:"quantity"`
	Discount  float64 `json:"discount"` // per unit
}

// LineTotal is (unitPrice - discount) * quantity.
func (c CartItem) LineTotal() float64 {
	return (c.UnitPrice - c.Discount) * c.Quantity
}

// Sale - the transaction header plus its lines.
type Sale struct {
	ID            string        `json:"id"`
	Date          string        `json:"date"` // ISO 8601
	Total         float64       `json:"total"`
	Items         []CartItem    `json:"items"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CustomerName  string        `json:"customerName,omitempty"`
	CustomerID    string        `json:"customerId,omitempty"`
}

// Quotation mirrors a Sale but never touches stock or the ledger.
type Quotation struct {
	ID             string     `json:"id"`
	Date           string     `json:"date"`
	Total          float64    `json:"total"`
	Items          []CartItem `json:"items"`
	CustomerName   string     `json:"customerName,omitempty"`
	ExpirationDate string     `json:"expirationDate"`
}

// Expense - money going out that is not stock purchase.
type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

// InventoryLog - one append-only ledger row per stock movement. Quantity is
// signed: positive for stock coming in, negative for stock going out.
// ProductName and UserName are denormalized snapshots so the row stays
// readable after the product or employee is gone.
type InventoryLog struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Type        LogType `json:"type"`
	Quantity    float64 `json:"quantity"`
	UserID      string  `json:"userId"`
	UserName    string  `json:"userName"`
}

// DaySchedule - opening hours for a single day.
type DaySchedule struct {
	IsOpen bool   `json:"isOpen"`
	Open   string `json:"open"`
	Close  string `json:"close"`
}

// OpeningHours - one schedule per weekday.
type OpeningHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// BusinessConfig - the singleton installation record. Saved wholesale, never
// field by field.
type BusinessConfig struct {
	Name           string        `json:"name"`
	TaxID          string        `json:"taxId"`
	Phone          string        `json:"phone"`
	Email          string        `json:"email"`
	Address        string        `json:"address"`
	ReceiptMessage string        `json:"receiptMessage"`
	CurrencySymbol string        `json:"currencySymbol"`
	Logo           string        `json:"logo,omitempty"`
	Theme          string        `json:"theme,omitempty"` // light / dark
	Language       string        `json:"language,omitempty"`
	OpeningHours   *OpeningHours `json:"openingHours,omitempty"`
}

// ValidRole reports whether r is one of the shipped roles.
func ValidRole(r Role) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PayCash, PayCard, PayTransfer:
		return true
	}
	return false
}
