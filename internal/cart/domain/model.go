package domain

import (
	"errors"

	catalogdomain "github.com/docusphere/docusphere-backend/internal/catalog/domain"
)

var ErrAlreadyInCart = errors.New("project already in cart")

// CartItem is one project in a device's cart, with the project as it was when
// added.
type CartItem struct {
	ProjectID string                `json:"projectId"`
	Project   catalogdomain.Project `json:"project"`
}
