package auth

import (
	"fmt"

	"docu360/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures that the application has a baseline set of
// authorization rules. It checks if each default policy exists before adding
// it, making the operation idempotent and safe to run on every start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Anonymous visitors can log in and fetch published artifacts. Customer
	// users get the product/editor API for their own account (ownership is
	// enforced in the service layer). Admins additionally manage customers.
	policies := [][]string{
		{"anonymous", "/auth/login", "GET"},
		{"anonymous", "/auth/callback", "GET"},
		{"anonymous", "/published/*", "GET"},
		{"anonymous", "/api/published/:id/download", "GET"},

		{"customer", "/auth/logout", "POST"},
		{"customer", "/api/products", "GET"},
		{"customer", "/api/products", "POST"},
		{"customer", "/api/products/*", "GET"},
		{"customer", "/api/products/*", "POST"},
		{"customer", "/api/products/*", "PUT"},
		{"customer", "/api/products/*", "DELETE"},

		{"admin", "/api/customers", "GET"},
		{"admin", "/api/customers", "POST"},
		{"admin", "/api/customers/*", "GET"},
		{"admin", "/api/customers/*", "PUT"},
		{"admin", "/api/customers/*", "DELETE"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	// Customers inherit anonymous permissions; admins inherit customer
	// permissions.
	inherits := [][2]string{
		{"customer", "anonymous"},
		{"admin", "customer"},
	}
	for _, g := range inherits {
		if has, _ := e.HasRoleForUser(g[0], g[1]); !has {
			if _, err := e.AddRoleForUser(g[0], g[1]); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add role %s -> %s", g[0], g[1]))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
