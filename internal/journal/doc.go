// Package journal persists per-track correction results to SQLite so
// runs can be inspected after the fact.
package journal
