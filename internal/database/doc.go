// Package database provides SQLite-based storage of past analysis results
// so clinicians can compare fits across data-collection sessions. The
// analysis core itself stays stateless; this store belongs to the CLI
// collaborator layer and is written to only after an analysis pass
// completes.
package database
