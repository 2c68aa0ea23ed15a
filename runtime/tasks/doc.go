// Package tasks holds the tasks every chore binary ships with. Importing
// the package registers them with the default task registry.
package tasks
