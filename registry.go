package main

// entity is implemented by everything the registry owns
type entity interface {
	EntityID() string
	setID(id string)
}

// Registry owns a set of live entities keyed by id. Iteration order is
// insertion order.
type Registry[T entity] struct {
	items map[string]T
	order []string
}

// NewRegistry creates an empty registry
func NewRegistry[T entity]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Add assigns a fresh id to e and stores it
func (r *Registry[T]) Add(e T) string {
	id := GenerateID()
	for r.Has(id) {
		id = GenerateID()
	}
	e.setID(id)
	r.items[id] = e
	r.order = append(r.order, id)
	return id
}

// Remove deletes the entity and reports whether it was present.
// Removing an unknown id is a no-op.
func (r *Registry[T]) Remove(id string) bool {
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the entity with the given id
func (r *Registry[T]) Get(id string) (T, bool) {
	e, ok := r.items[id]
	return e, ok
}

// Has reports whether id is live
func (r *Registry[T]) Has(id string) bool {
	_, ok := r.items[id]
	return ok
}

// Len returns the number of live entities
func (r *Registry[T]) Len() int {
	return len(r.order)
}

// List returns a copy of the live entities. Callers may add or remove while
// ranging over the result.
func (r *Registry[T]) List() []T {
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Clear drops everything
func (r *Registry[T]) Clear() {
	clear(r.items)
	r.order = r.order[:0]
}

// Entities groups the registries the simulation owns
type Entities struct {
	Enemies     *Registry[*Enemy]
	PowerUps    *Registry[*PowerUp]
	Projectiles *Registry[*Projectile]
}

// NewEntities creates empty registries
func NewEntities() *Entities {
	return &Entities{
		Enemies:     NewRegistry[*Enemy](),
		PowerUps:    NewRegistry[*PowerUp](),
		Projectiles: NewRegistry[*Projectile](),
	}
}

// Clear empties every registry
func (e *Entities) Clear() {
	e.Enemies.Clear()
	e.PowerUps.Clear()
	e.Projectiles.Clear()
}
