// Package toolrunner runs the external binaries the operator drives (kubectl,
// helm, flux) and derives the higher-level primitives the installers need:
// applying a YAML document, checking and creating namespaces.
//
// The Runner interface is the injection point. Production code uses
// ExecRunner, which spawns processes through go-cmd; tests use the recording
// runner in the fake subpackage.
//
// Exit status handling lives in Tools.Exec: a non-zero exit becomes a
// *CommandError carrying stderr. The only tolerated failure is
// EnsureNamespace losing a creation race, where kubectl reports that the
// namespace already exists.
package toolrunner
