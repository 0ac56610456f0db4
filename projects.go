package flowpay

import (
	"context"
	"net/http"
	"time"

	"github.com/flowpay/flowpay-go/pkg/transport"
)

// ProjectService lists the projects the API key has access to.
type ProjectService struct {
	transport *transport.Transport
}

// Project groups payments under a merchant-defined namespace.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectList is the full set of accessible projects.
type ProjectList struct {
	Data []Project `json:"data"`
	Meta ListMeta  `json:"meta"`
}

// List returns all projects visible to the configured API key.
func (s *ProjectService) List(ctx context.Context) (*ProjectList, error) {
	var list ProjectList
	if err := s.transport.Request(ctx, http.MethodGet, "/v1/projects", &list); err != nil {
		return nil, err
	}
	return &list, nil
}
