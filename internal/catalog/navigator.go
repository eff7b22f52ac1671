package catalog

import (
	"context"
	"strings"
)

// Hidden is optionally satisfied by a Node that should be skipped during
// child enumeration (spec §4.4.4 step 3).
type Hidden interface {
	Hidden() bool
}

// Virtual is optionally satisfied by a Container whose children should be
// flattened into its parent's listing rather than shown as one more level
// (spec §4.4.4 step 3, "recurse into virtual children").
type Virtual interface {
	Virtual() bool
}

// CachePolicy selects whether the Navigator may perform live I/O
// (extra-metadata-read) or must serve stale/cached answers only (spec §5).
type CachePolicy int

const (
	// CacheOnly refuses network/disk reads; only cached answers are
	// returned. Used for child-enumeration by default and whenever the
	// data source has extra-metadata-read disabled.
	CacheOnly CachePolicy = iota
	// AllowRefresh performs live reads when the cache is empty.
	AllowRefresh
)

// Navigator wraps a catalog Container root with a cache policy and
// virtual/hidden flattening, exposing the single Child/Children contract
// the resolver depends on (spec §4.2 Catalog Navigator).
type Navigator struct {
	root   Container
	policy CachePolicy
}

// NewNavigator builds a Navigator over root using policy.
func NewNavigator(root Container, policy CachePolicy) *Navigator {
	return &Navigator{root: root, policy: policy}
}

// Root returns the data-source root container.
func (n *Navigator) Root() Container { return n.root }

// monitorFor builds the Monitor appropriate to this Navigator's policy.
func (n *Navigator) monitorFor(ctx context.Context) *Monitor {
	if n.policy == AllowRefresh {
		return NewLiveMonitor(ctx)
	}
	return NewStaleMonitor(ctx)
}

// Children returns the visible (non-hidden, virtual-flattened) children of
// container.
func (n *Navigator) Children(ctx context.Context, container Container) ([]Node, error) {
	mon := n.monitorFor(ctx)
	return n.children(ctx, mon, container)
}

func (n *Navigator) children(ctx context.Context, mon *Monitor, container Container) ([]Node, error) {
	if mon.Cancelled() {
		return nil, ErrCancelled
	}
	raw, err := container.Children(ctx, mon)
	if err != nil {
		return nil, err
	}
	var out []Node
	for _, child := range raw {
		if h, ok := child.(Hidden); ok && h.Hidden() {
			continue
		}
		if v, ok := child.(Virtual); ok && v.Virtual() {
			if vc, ok := child.(Container); ok {
				nested, err := n.children(ctx, mon, vc)
				if err != nil {
					continue
				}
				out = append(out, nested...)
				continue
			}
		}
		out = append(out, child)
	}
	return out, nil
}

// Child resolves a single named child of container (case-insensitive),
// honoring hidden/virtual flattening. Returns (nil, false) if not found; a
// catalog error during the lookup yields (nil, false) rather than an
// error, per spec §7 ("the current resolution step silently yields no
// children").
func (n *Navigator) Child(ctx context.Context, container Container, name string) (Node, bool) {
	kids, err := n.Children(ctx, container)
	if err != nil {
		logCatalogError("navigator.Child", err)
		return nil, false
	}
	for _, k := range kids {
		if strings.EqualFold(k.Name(), name) {
			if alias, ok := k.(AliasRef); ok {
				mon := n.monitorFor(ctx)
				target, err := alias.Target(ctx, mon)
				if err != nil {
					logCatalogError("navigator.Child.resolveAlias", err)
					return k, true
				}
				return target, true
			}
			return k, true
		}
	}
	return nil, false
}

// CacheStructure forces (or skips, under CacheOnly) a refresh of
// container's children, mirroring the driver's cacheStructure(monitor,
// mode) call.
func (n *Navigator) CacheStructure(ctx context.Context, container Container) error {
	if n.policy != AllowRefresh {
		return nil
	}
	mon := n.monitorFor(ctx)
	_, err := container.Children(ctx, mon)
	return err
}

// ResolveObject walks a dotted path of names from root, returning the final
// node reached, or (nil, false) if any segment fails to resolve.
func (n *Navigator) ResolveObject(ctx context.Context, path []string) (Node, bool) {
	var cur Node = n.root
	for _, seg := range path {
		cont, ok := cur.(Container)
		if !ok {
			return nil, false
		}
		next, found := n.Child(ctx, cont, seg)
		if !found {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
