// Package scanner discovers the SQL templates of a deployment.
//
// Templates are the files directly inside the definitions directory whose
// names match whdeploy.TemplatePattern. They are returned in lexicographic
// path order with their content, a SHA-256 checksum and a deterministic
// UUID v5 identity.
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// enabling both production use with the OS filesystem and testing with
// in-memory filesystems.
package scanner
