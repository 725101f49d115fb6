package data

import "time"

// Roles an account can hold. Admins manage every customer; customer users
// are bound to the single customer account they may act as.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is a platform login, resolved from the identity provider's subject.
type User struct {
	ID         string  `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	Email      string  `db:"email" json:"email"`
	Subject    string  `db:"subject" json:"-"`
	Role       string  `db:"role" json:"role"`
	CustomerID *string `db:"customer_id" json:"customerId"`
}

// Customer is a tenant account owning products.
type Customer struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Designation string    `db:"designation" json:"designation"`
	Email       string    `db:"email" json:"email"`
	Company     string    `db:"company" json:"company"`
	Status      string    `db:"status" json:"status"` // active | inactive
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Product is a documentation site owned by one customer. The publish fields
// are written only by the publish flow, after the artifact write succeeds.
// The stored artifact itself is served by the download endpoint, never
// inlined into registry responses.
type Product struct {
	ID            string    `db:"id" json:"id"`
	CustomerID    string    `db:"customer_id" json:"customerId"`
	Name          string    `db:"name" json:"name"`
	Slug          string    `db:"slug" json:"slug"`
	Desc          string    `db:"descr" json:"desc"`
	Published     bool      `db:"published" json:"published"`
	PublishedURL  *string   `db:"published_url" json:"publishedUrl"`
	PublishedHTML *string   `db:"published_html" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
