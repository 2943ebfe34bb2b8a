/*
Package espalier turns template instance models (TIMs) into template scenario
models (TSMs): concrete, reproducible scenario directories grown from a
templated source tree.

A TIM is a directory (or git repository) holding a model/ directory with a
run configuration, a context template, and a manifest template, next to the
template files themselves. One apply pass:

 1. copies or clones the TIM into the destination,
 2. resolves the root seed and the typed CLI inputs,
 3. renders the context document with seeded generators,
 4. renders the manifest document and parses it into a file/directory tree,
 5. walks the tree: directories are created, copy patterns are copied
    verbatim, file templates are rendered with a layered context,
 6. deletes the consumed template sources, and
 7. snapshots config, context, and manifest before committing the result.

Because every random draw flows from a single root seed, re-running a pass
with the same seed and inputs reproduces the scenario exactly.

The building blocks live in pkg/: seed (deterministic seed sequences),
generator (the pluggable seeded generator registry), render (template
environments and the tree renderer), manifest (the file/directory object
model), schema (input type validation), and codec (YAML/JSON documents).
The espalier command wires them together.
*/
package espalier
