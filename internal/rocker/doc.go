// Package rocker plugs the Rocker template compiler into a project.
//
// Applying the plugin publishes a "rocker" extension holding the override
// version and the registry of units. Every unit gets exactly one generation
// task, named "rocker" + the capitalized unit name. When a source set with
// the unit's name exists, that source set's compile task is made to depend
// on the generation task and the Rocker runtime is added to its compile
// scope. All com.fizzed:rocker-* requests, declared or transitive, resolve
// to one pinned version.
package rocker
