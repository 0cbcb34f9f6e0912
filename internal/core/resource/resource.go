// Package resource defines the typed model for linked infrastructure
// resources (databases, caches, queues, object stores, email senders).
//
// Resources are created and owned by the orchestration host; this system
// only reads their attributes. The package is part of the Functional Core -
// pure values, no I/O.
package resource

// =============================================================================
// Kinds
// =============================================================================

// Kind discriminates the linked-resource variants.
type Kind string

const (
	KindDatabase    Kind = "database"
	KindCache       Kind = "cache"
	KindObjectStore Kind = "object-store"
	KindQueue       Kind = "queue"
	KindMailer      Kind = "mailer"

	// KindUnknown covers resource kinds this version does not understand.
	// Unknown resources contribute nothing to the environment instead of
	// failing resolution (forward-compatibility policy).
	KindUnknown Kind = "unknown"
)

// Engine identifies the relational database family.
// The values double as the CONNECTION environment token.
type Engine string

const (
	EnginePostgres Engine = "pgsql"
	EngineMySQL    Engine = "mysql"
)

// Well-known default ports for the two relational families.
const (
	PostgresDefaultPort = 5432
	MySQLDefaultPort    = 3306
)

// =============================================================================
// Resource Variants
// =============================================================================

// Resource is the closed set of linked-resource variants. Consumers switch
// on the concrete type; anything unmatched must degrade to an empty
// contribution, never an error.
type Resource interface {
	// Kind returns the variant discriminator.
	Kind() Kind

	// LogicalName returns the operator-assigned resource name.
	LogicalName() string
}

// Database is a relational database instance (postgres or mysql family).
// Attribute values may still be unresolved placeholder tokens from the
// orchestration host; they are carried verbatim.
type Database struct {
	Name         string
	Engine       Engine
	Host         string
	Port         int
	DatabaseName string
	Username     string
	Password     string
}

func (Database) Kind() Kind            { return KindDatabase }
func (d Database) LogicalName() string { return d.Name }

// Cache is a key-value cache (Redis-compatible, TLS transport).
type Cache struct {
	Name     string
	Host     string
	Port     int
	Password string
}

func (Cache) Kind() Kind            { return KindCache }
func (c Cache) LogicalName() string { return c.Name }

// ObjectStore is an object storage bucket.
type ObjectStore struct {
	Name   string
	Bucket string
}

func (ObjectStore) Kind() Kind            { return KindObjectStore }
func (o ObjectStore) LogicalName() string { return o.Name }

// Queue is a message queue reachable by URL.
type Queue struct {
	Name string
	URL  string
}

func (Queue) Kind() Kind            { return KindQueue }
func (q Queue) LogicalName() string { return q.Name }

// Mailer is a managed email sender.
type Mailer struct {
	Name string
}

func (Mailer) Kind() Kind            { return KindMailer }
func (m Mailer) LogicalName() string { return m.Name }

// Unknown is a resource whose declared kind this version does not recognize.
// Declared preserves the raw kind string for diagnostics.
type Unknown struct {
	Name     string
	Declared string
}

func (Unknown) Kind() Kind            { return KindUnknown }
func (u Unknown) LogicalName() string { return u.Name }

// =============================================================================
// Engine Classification
// =============================================================================

// ClassifyEngine classifies a relational resource that carries no explicit
// engine discriminator by comparing its resolved port against the two
// well-known defaults. Only the manifest boundary calls this, and it logs a
// warning there; declared engines never go through classification.
//
// Example:
//
//	ClassifyEngine(3306) // returns EngineMySQL
//	ClassifyEngine(5432) // returns EnginePostgres
//	ClassifyEngine(0)    // returns EnginePostgres (legacy fallback)
func ClassifyEngine(port int) Engine {
	if port == MySQLDefaultPort {
		return EngineMySQL
	}
	return EnginePostgres
}
