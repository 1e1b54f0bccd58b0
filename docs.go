// Package restview turns arbitrary Go object graphs into ordered,
// format-neutral documents and serves them over HTTP resources. Projections
// are declared once as views, ordered lists of field descriptors mapping
// dotted paths or computed transforms to destination keys, and rendered
// identically into every registered wire format.
//
// The view package hosts the projection engine: a reflective path resolver
// that walks attributes, map keys, and zero-argument methods, fanning out
// over collections, and a renderer that composes nested views recursively.
// The emit package serialises rendered documents into json, xml, or jsonp
// with identical structure across formats. The resource package dispatches
// incoming requests to handler functions under verb gating, authentication,
// and content negotiation, converting every failure into a structured error
// envelope rather than a transport-level error page. The router package
// mounts resources onto a gorilla/mux router with format-suffix routes and
// the usual middleware defaults, while jsonutil provides thin sonic wrappers
// for high-throughput encoding and decoding.
//
// # Packages
//
//   - view: field descriptors, dotted-path resolution, ordered documents,
//     and recursive nested-view rendering.
//   - emit: frozen emitter registry with format negotiation and built-in
//     json, xml, and jsonp emitters.
//   - resource: request dispatch, per-verb auth requirements, the failure
//     taxonomy, error translation, and pagination envelopes.
//   - router: gorilla/mux mounting with logging, CORS, timeout, and OpenAPI
//     validation middlewares.
//   - jsonutil: tiny helpers around sonic for performance-sensitive encoding
//     tasks.
//
// # Quick Start
//
//	bookView := view.MustNew("book",
//	    view.Path("id"),
//	    view.Path("title"),
//	    view.Computed("authors", func(src any) (any, error) {
//	        return view.Apply(authorView, src.(Book).Authors), nil
//	    }),
//	)
//
//	books := resource.MustNew("books",
//	    resource.Get(listBooks, resource.WithView(bookView)),
//	    resource.Post(createBook, resource.RequireAuth()),
//	)
//
//	r := router.New(router.WithLogger(logger))
//	router.Mount(r, "/books", books)
//
// Every resource shares the same emitters, so a request for /books.xml and
// /books.json differ only in serialisation syntax, never in structure.
package restview
