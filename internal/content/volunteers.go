package content

import (
	"context"
	"errors"
	"strings"

	"github.com/pawnsgambit/club-api/internal/cms"
)

// Application is a volunteer signup submitted through the about page.
type Application struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Message      string `json:"message"`
	Availability string `json:"availability,omitempty"`
}

var ErrIncompleteApplication = errors.New("content: name and email are required")

// Volunteers submits volunteer applications to the content API.
type Volunteers struct {
	c *cms.Client
}

func NewVolunteers(c *cms.Client) *Volunteers {
	return &Volunteers{c: c}
}

// Submit creates a volunteer application entry.
func (v *Volunteers) Submit(ctx context.Context, app Application) (cms.Record, error) {
	app.Name = strings.TrimSpace(app.Name)
	app.Email = strings.TrimSpace(app.Email)
	if app.Name == "" || app.Email == "" {
		return nil, ErrIncompleteApplication
	}
	data := map[string]any{
		"name":    app.Name,
		"email":   app.Email,
		"role":    app.Role,
		"message": app.Message,
	}
	if app.Availability != "" {
		data["availability"] = app.Availability
	}
	return v.c.PostData(ctx, "/volunteer-applications", data)
}
