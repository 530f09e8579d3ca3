package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID      uuid.UUID
	Role        string
	Permissions []string
}

// Can reports whether the actor holds the permission code.
func (a Actor) Can(code string) bool {
	for _, p := range a.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

func (a Actor) require(code string) error {
	if !a.Can(code) {
		return fmt.Errorf("missing permission %q: %w", code, apperror.ErrForbidden)
	}
	return nil
}

// newValidator reads the same `binding` tags gin validates at the edge.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return v
}

// validationError turns validator output into an apperror.ErrValidation.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation("%s", err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Namespace(), fe.Tag()))
		}
	}
	return apperror.Validation("%s", strings.Join(msgs, "; "))
}

func parseID(raw, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s id %q: %w", entity, raw, apperror.ErrInvalidID)
	}
	return id, nil
}

func parseOptionalID(raw *string, entity string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseID(*raw, entity)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func timePtr(t time.Time) *time.Time { return &t }

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func intPtr(n int) *int { return &n }
