package environment

import (
	"strconv"

	"github.com/artpar/stager/internal/core/resource"
)

// =============================================================================
// Environment Variable Names
// =============================================================================

// Variable names contributed by linked resources. The names are part of the
// produced artifact contract and must not change.
const (
	KeyConnection     = "CONNECTION"
	KeyHost           = "HOST"
	KeyDatabase       = "DATABASE"
	KeyUsername       = "USERNAME"
	KeyPassword       = "PASSWORD"
	KeyPort           = "PORT"
	KeyFilesystemDisk = "FILESYSTEM_DISK"
	KeyBucket         = "BUCKET"
	KeyQueueURL       = "QUEUE_URL"
	KeyMailer         = "MAILER"
	KeyAppURL         = "APP_URL"
)

// Fixed token values.
const (
	// TokenFilesystemS3 selects the object-store filesystem driver.
	TokenFilesystemS3 = "s3"

	// TokenMailerSES selects the managed sender service.
	TokenMailerSES = "ses"

	// cacheTLSScheme prefixes cache hosts; the cache transport is always TLS.
	cacheTLSScheme = "tls://"
)

// =============================================================================
// Resource Mapping
// =============================================================================

// ForResource maps one linked resource to its default environment variables.
//
// This is a total function: it never fails, and resource kinds it does not
// recognize yield an empty map rather than an error. The queue and mailer
// mappings are intentionally minimal single-key contributions; they are the
// documented extension point, not an oversight.
//
// Example:
//
//	ForResource(resource.Database{Engine: resource.EnginePostgres, Host: "db.local", Port: 5432})
//	// Returns: map[CONNECTION:pgsql HOST:db.local DATABASE: USERNAME: PASSWORD: PORT:5432]
func ForResource(r resource.Resource) map[string]string {
	switch r := r.(type) {
	case resource.Database:
		return databaseEnvironment(r)
	case resource.Cache:
		return cacheEnvironment(r)
	case resource.ObjectStore:
		return map[string]string{
			KeyFilesystemDisk: TokenFilesystemS3,
			KeyBucket:         r.Bucket,
		}
	case resource.Queue:
		return map[string]string{
			KeyQueueURL: r.URL,
		}
	case resource.Mailer:
		return map[string]string{
			KeyMailer: TokenMailerSES,
		}
	default:
		// Unknown and future kinds contribute nothing.
		return map[string]string{}
	}
}

// databaseEnvironment maps a relational database to its connection variables.
// A database that reached this point without an engine discriminator is
// classified by port as a legacy compatibility path; the manifest boundary
// normally sets the engine (and warns) before resolution ever runs.
func databaseEnvironment(d resource.Database) map[string]string {
	engine := d.Engine
	if engine == "" {
		engine = resource.ClassifyEngine(d.Port)
	}
	return map[string]string{
		KeyConnection: string(engine),
		KeyHost:       d.Host,
		KeyDatabase:   d.DatabaseName,
		KeyUsername:   d.Username,
		KeyPassword:   d.Password,
		KeyPort:       strconv.Itoa(d.Port),
	}
}

// cacheEnvironment maps a key-value cache. The host carries the TLS scheme
// when present; an absent host maps to an empty string, not an error.
func cacheEnvironment(c resource.Cache) map[string]string {
	host := ""
	if c.Host != "" {
		host = cacheTLSScheme + c.Host
	}
	return map[string]string{
		KeyHost:     host,
		KeyPort:     strconv.Itoa(c.Port),
		KeyPassword: c.Password,
	}
}
