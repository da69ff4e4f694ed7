package types

// Reserved component names. Both are registered when a world is created and
// populated on every spawn.
const (
	// EntityIDComponent holds the U32 id of every entity. Ids increase
	// monotonically and are never reused.
	EntityIDComponent = "entity id"

	// DeleteFlagComponent holds the Bool tombstone of every entity.
	DeleteFlagComponent = "to be deleted"
)

// ReservedComponentNames lists the built-in component names.
var ReservedComponentNames = []string{
	EntityIDComponent,
	DeleteFlagComponent,
}

// World is the entity store. Components are registered by name, attached to
// entities through an EntityBuilder, and read back through intersection
// queries. Entities are removed in two phases: DeleteByID marks them and
// Update sweeps them, so query results stay valid until the next Update.
//
// A World is not safe for concurrent use.
type World interface {
	// Register declares a component name.
	// Returns ErrComponentAlreadyRegistered if the name is already known.
	Register(name string) error

	// SpawnEntity appends a new entity with a fresh id and returns a builder
	// for attaching its components.
	SpawnEntity() EntityBuilder

	// Query returns the cells of every entity that has all the named
	// components. Index i of every column refers to the same entity, in
	// spawn order. Returns ErrComponentNotFound for an unknown name.
	Query(names ...string) (QueryResult, error)

	// QueryOne returns every cell stored for a single component.
	QueryOne(name string) ([]*Cell, error)

	// DeleteByID marks the entity with the given id for removal. Unknown ids
	// are ignored. Nothing is removed until Update runs.
	DeleteByID(id uint32) error

	// Update removes every marked entity and compacts storage. Cells held
	// from earlier queries must not be borrowed across this call.
	Update() error

	// AddResource stores a named value outside of the entity store,
	// replacing any previous value with the same name.
	AddResource(name string, value Value)

	// GetResource returns the cell for a named resource.
	// Returns ErrResourceNotFound if no resource has that name.
	GetResource(name string) (*Cell, error)

	// EntityCount returns the number of entity slots, including entities
	// that are marked but not yet swept.
	EntityCount() int

	// Components returns the registered component names in sorted order.
	Components() []string
}

// EntityBuilder attaches components to the entity most recently spawned.
// A builder becomes stale once another entity is spawned or the world is
// updated; using a stale builder panics.
type EntityBuilder interface {
	// WithComponent stores value under name for this entity. Attaching the
	// same name twice replaces the earlier value.
	// Returns ErrNeedToRegister if name has not been registered and
	// ErrReservedComponent for EntityIDComponent or DeleteFlagComponent.
	WithComponent(name string, value Value) (EntityBuilder, error)

	// ID returns the entity id assigned at spawn.
	ID() uint32
}
