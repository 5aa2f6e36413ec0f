package registry

import (
	"context"
	"fmt"

	"github.com/vk/regentgo/internal/adapter"
	"github.com/vk/regentgo/internal/ctxlog"
	"github.com/vk/regentgo/internal/objectid"
)

// RegisterComponent resolves a descriptor for instance, builds its management
// adapter, and binds it to id on the component server. An identifier that is
// already registered is unregistered first, so re-registration replaces
// rather than failing. A nil instance is logged and ignored; every other
// failure is logged with the identifier and returned.
func (r *Registry) RegisterComponent(ctx context.Context, instance any, id objectid.Name, typeHint string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registering managed component.", "id", id)

	if instance == nil {
		logger.Error("Null component instance.", "id", id)
		return nil
	}

	d := r.Resolve(ctx, instance, nil, typeHint)
	if d == nil {
		err := fmt.Errorf("no descriptor resolved for %T", instance)
		logger.Error("Error registering component.", "id", id, "error", err)
		return err
	}

	ad, err := adapter.Build(d, instance)
	if err != nil {
		logger.Error("Error registering component.", "id", id, "error", err)
		return fmt.Errorf("registering %s: %w", id, err)
	}

	if r.server.IsRegistered(id) {
		logger.Debug("Unregistering existing component.", "id", id)
		if err := r.server.Unregister(id); err != nil {
			logger.Error("Error registering component.", "id", id, "error", err)
			return fmt.Errorf("registering %s: %w", id, err)
		}
	}

	if err := r.server.Register(ad, id); err != nil {
		logger.Error("Error registering component.", "id", id, "error", err)
		return fmt.Errorf("registering %s: %w", id, err)
	}
	return nil
}

// RegisterComponentName is RegisterComponent for identifiers carried as
// strings. Registration failures stay caller-visible, so a malformed
// identifier is an error here, unlike unregistration.
func (r *Registry) RegisterComponentName(ctx context.Context, instance any, rawID string, typeHint string) error {
	id, err := objectid.Parse(rawID)
	if err != nil {
		ctxlog.FromContext(ctx).Error("Error parsing component identifier.", "id", rawID, "error", err)
		return err
	}
	return r.RegisterComponent(ctx, instance, id, typeHint)
}

// UnregisterComponent removes the registration under id if there is one.
// It is unconditionally safe: every error, including "not registered", is
// swallowed and logged — unregistration is best-effort cleanup.
func (r *Registry) UnregisterComponent(ctx context.Context, id objectid.Name) {
	logger := ctxlog.FromContext(ctx)
	if !r.server.IsRegistered(id) {
		return
	}
	if err := r.server.Unregister(id); err != nil {
		logger.Error("Error unregistering component.", "id", id, "error", err)
	}
}

// UnregisterComponentName is UnregisterComponent for identifiers carried as
// strings. Malformed identifiers are caught here at the boundary and logged,
// never propagated.
func (r *Registry) UnregisterComponentName(ctx context.Context, rawID string) {
	id, err := objectid.Parse(rawID)
	if err != nil {
		ctxlog.FromContext(ctx).Info("Error parsing component identifier.", "id", rawID, "error", err)
		return
	}
	r.UnregisterComponent(ctx, id)
}

// InvokeAll invokes a no-argument operation across many registered
// components, for lifecycle fan-out (init, start, stop). Identifiers that are
// zero, unregistered, or whose surface does not declare the operation are
// silently skipped. Other failures stop the fan-out when failFast is set and
// are logged and skipped otherwise.
func (r *Registry) InvokeAll(ctx context.Context, ids []objectid.Name, operation string, failFast bool) error {
	logger := ctxlog.FromContext(ctx)

	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		surface, ok := r.server.Describe(id)
		if !ok || surface.Operation(operation) == nil {
			continue
		}
		if _, err := r.server.Invoke(id, operation, nil); err != nil {
			if failFast {
				return fmt.Errorf("invoking %s on %s: %w", operation, id, err)
			}
			logger.Info("Error invoking operation.", "id", id, "operation", operation, "error", err)
		}
	}
	return nil
}

// GetAttributeType returns the declared type of an attribute of the
// component registered under id, from the server's described surface. Unknown
// identifiers or attributes yield "".
func (r *Registry) GetAttributeType(ctx context.Context, id objectid.Name, attrName string) string {
	surface, ok := r.server.Describe(id)
	if !ok {
		ctxlog.FromContext(ctx).Info("No metadata for registered component.", "id", id)
		return ""
	}
	if attr := surface.Attribute(attrName); attr != nil {
		return attr.Type
	}
	return ""
}
