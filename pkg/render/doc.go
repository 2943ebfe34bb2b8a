// Package render implements the template resolution engine: the environments
// that evaluate context, manifest, and body templates, and the recursive tree
// renderer that materializes a scenario from a validated manifest.
//
// A full pass looks like this:
//
//	store := seed.NewStore(rootSeed)
//	gens := registry.Load(policy)
//
//	ctxEnv := render.NewContextEnvironment(root, store, gens)
//	objEnv := render.NewObjectEnvironment(root)
//	timEnv := render.NewTemplateEnvironment(root, opts, store, gens)
//
//	context, _ := ctxEnv.RenderDocument("model/context.yml.tmpl", in)
//	raw, _ := objEnv.RenderDocument("model/templates.yml.tmpl", docCtx)
//	objects, _ := manifest.Parse(raw)
//
//	queues, err := render.NewTreeRenderer(timEnv, logger).
//		Render(objects, root, root, context.(map[string]any), nil)
//	if err == nil {
//		err = queues.Drain()
//	}
//
// Rendering and deletion are strictly separated phases: the tree walk only
// queues sources marked for deletion, and Drain removes them afterwards,
// files before directories, in reverse insertion order.
package render
