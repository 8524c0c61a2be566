// Package store provides SQLite-backed storage for the consulta service.
//
// Tables:
//   - usuarios: application users; the password hash column is written and
//     read only through dedicated methods
//   - perfil: access profiles
//   - permissao, perfilpermissao: permissions and their profile links
//
// Filtered reads do not go through Store methods. The query engine compiles
// them to SQL and dispatches through the Querier interface, which *Store
// implements.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//   - case_sensitive_like=ON: LIKE matches case exactly
package store
